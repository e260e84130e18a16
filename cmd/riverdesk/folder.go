package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"riverdesk/internal/desk"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage location folders",
}

var folderListCmd = &cobra.Command{
	Use:   "list [NAME]",
	Short: "List folders, or the contents of one folder",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "FolderList")
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmdContext(cmd)

		if len(args) == 1 {
			items, err := a.FolderContents(ctx, args[0])
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("Folder is empty.")
				return nil
			}
			for _, e := range items {
				fmt.Printf("%-24s  %-16s  %s\n", e.ID, e.Status, e.Name)
			}
			return nil
		}

		groups, names, err := a.Folders(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			label := name
			if name == desk.UnspecifiedFolder {
				label = name + " (unassigned)"
			}
			fmt.Printf("%4d  %s\n", len(groups[name]), label)
		}
		return nil
	},
}

var folderCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create an empty folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "FolderCreate")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.CreateFolder(cmdContext(cmd), args[0]); err != nil {
			return err
		}
		fmt.Printf("Created folder %s\n", args[0])
		return nil
	},
}

var folderDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a folder, releasing its items to the unassigned folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "FolderDelete")
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.DeleteFolder(cmdContext(cmd), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Deleted folder %s, released %d item(s)\n", args[0], n)
		return nil
	},
}

var folderRenameCmd = &cobra.Command{
	Use:   "rename OLD NEW",
	Short: "Rename a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "FolderRename")
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.RenameFolder(cmdContext(cmd), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Renamed %s to %s (%d item(s))\n", args[0], args[1], n)
		return nil
	},
}

var folderMoveCmd = &cobra.Command{
	Use:   "move FOLDER ID...",
	Short: "Move items into a folder",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "FolderMove")
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.MoveToFolder(cmdContext(cmd), args[1:], args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Moved %d item(s) to %s\n", n, args[0])
		return nil
	},
}

func init() {
	folderCmd.AddCommand(folderListCmd)
	folderCmd.AddCommand(folderCreateCmd)
	folderCmd.AddCommand(folderDeleteCmd)
	folderCmd.AddCommand(folderRenameCmd)
	folderCmd.AddCommand(folderMoveCmd)

	rootCmd.AddCommand(folderCmd)
}
