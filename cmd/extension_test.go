package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvLedgerFile, EnvLedgerFile, EnvSettingsFile, EnvSettingsFile, EnvVerbose, EnvVerbose)

	helloCmdPath := filepath.Join(tempDir, "exp-hello")
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write exp-hello source: %v", err)
	}
	cmd := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile exp-hello: %v", err)
	}

	expBinaryPath := filepath.Join(tempDir, "exp")
	cmd = exec.Command("go", "build", "-o", expBinaryPath, "../exp")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile exp binary: %v", err)
	}

	expectedLedgerFile := filepath.Join(tempDir, "random_ledger.csv")
	expectedSettingsFile := filepath.Join(tempDir, "random.env")

	args := []string{
		"-ledger-file", expectedLedgerFile,
		"-settings-file", expectedSettingsFile,
		"-v",
		"hello",
		"world",
	}
	expCmd := exec.Command(expBinaryPath, args...)
	expCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}

	var stdout, stderr bytes.Buffer
	expCmd.Stdout = &stdout
	expCmd.Stderr = &stderr
	if err := expCmd.Run(); err != nil {
		t.Fatalf("exp command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, want := range []string{
		EnvLedgerFile + "=" + expectedLedgerFile,
		EnvSettingsFile + "=" + expectedSettingsFile,
		EnvVerbose + "=" + strconv.FormatBool(true),
		"args=[world]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, but got:\n%s", want, output)
		}
	}
}

func TestRunExtension_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	found, code := RunExtension("does-not-exist", nil)
	if found || code != 0 {
		t.Errorf("RunExtension() = %v, %d, want false, 0", found, code)
	}
}
