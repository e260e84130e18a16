package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassphrase prompts on the terminal without echo. When stdin is not a
// terminal the first line of input is used.
func readPassphrase(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(b), nil
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Encrypted backups of the registry",
}

var backupInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the backup key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		passphrase, err := readPassphrase("New passphrase: ")
		if err != nil {
			return err
		}
		confirm, err := readPassphrase("Repeat passphrase: ")
		if err != nil {
			return err
		}
		if passphrase != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		a, err := newApp(cmd, "BackupInit")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.SetupEncryption(passphrase); err != nil {
			return fmt.Errorf("setting up encryption: %w", err)
		}
		fmt.Println("Backup keys created.")
		return nil
	},
}

var backupExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write an encrypted bundle of every stored collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "BackupExport")
		if err != nil {
			return err
		}
		defer a.Close()

		b, err := a.ExportBackup(cmdContext(cmd), args[0])
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		fmt.Printf("Backed up %d key(s) to %s\n", len(b.Entries), args[0])
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Restore an encrypted bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		replace, _ := cmd.Flags().GetBool("replace")

		passphrase, err := readPassphrase("Passphrase: ")
		if err != nil {
			return err
		}

		a, err := newApp(cmd, "BackupImport")
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.ImportBackup(cmdContext(cmd), args[0], passphrase, replace)
		if err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}
		fmt.Printf("Restored %d key(s)\n", n)
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupInitCmd)
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
	backupImportCmd.Flags().Bool("replace", false, "Remove keys that are not in the bundle")

	rootCmd.AddCommand(backupCmd)
}
