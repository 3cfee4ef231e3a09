package cli

import (
	"fmt"
	"path/filepath"

	"github.com/gosuri/uitable"

	"github.com/julianstephens/daybook/internal/constants"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	a, err := ctx.Open(false)
	if err != nil {
		return err
	}

	backupPath, err := a.Backups.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.printf("%s Backup created: %s\n", okColor.Sprint("✓"), filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	a, err := ctx.Open(false)
	if err != nil {
		return err
	}

	backups, err := a.Backups.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.println("No backups found.")
		ctx.printf("Backups are stored in: %s\n", a.Backups.GetBackupDir())
		return nil
	}

	ctx.printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("CREATED"), bold.Sprint("FILE"), bold.Sprint("ID"), bold.Sprint("HABITS"), bold.Sprint("ENTRIES"), bold.Sprint("SIZE"))
	for _, b := range backups {
		tbl.AddRow(
			b.Timestamp.Format("2006-01-02 15:04:05"),
			filepath.Base(b.Path),
			b.ID[:min(8, len(b.ID))],
			b.Habits,
			b.Entries,
			fmt.Sprintf("%.1f KB", float64(b.Size)/1024.0),
		)
	}
	ctx.println(tbl)
	ctx.printf("\nBackup directory: %s\n", a.Backups.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	Backup string `arg:"" help:"Path, file name or id of the backup to restore."`
	Yes    bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	a, err := ctx.Open(true)
	if err != nil {
		return err
	}

	backupPath, err := a.Backups.Resolve(c.Backup)
	if err != nil {
		return err
	}

	ctx.println(warnColor.Sprint("WARNING: this replaces all habits and journal entries with the backup."))
	ctx.println("A backup of your current data will be created before restoring.")
	ctx.printf("\nRestore from: %s\n", filepath.Base(backupPath))

	confirmed, err := confirm(c.Yes, "Restore this backup?")
	if err != nil {
		return err
	}
	if !confirmed {
		ctx.println("Restore cancelled.")
		return nil
	}

	preRestore, err := a.Backups.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if err := a.Reload(); err != nil {
		return err
	}

	ctx.printf("%s Restored %d habits and %d journal entries.\n", okColor.Sprint("✓"), a.Habits.Len(), a.Journal.Len())
	ctx.printf("Previous data saved to %s\n", filepath.Base(preRestore))
	return nil
}
