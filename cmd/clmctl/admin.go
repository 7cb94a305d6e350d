package main

import (
	"context"
	"fmt"
	"path/filepath"

	contractpro "github.com/wellnessvoyage60-gif/contract-management-app"
)

func (a *app) runArchive(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: clmctl archive list|upload|download|delete")
	}
	if err := a.guard.Require(); err != nil {
		return err
	}
	switch args[0] {
	case "list":
		return a.archiveList(ctx, args[1:])
	case "upload":
		return a.archiveUpload(ctx, args[1:])
	case "download":
		return a.archiveDownload(ctx, args[1:])
	case "delete":
		return a.archiveDelete(ctx, args[1:])
	default:
		return fmt.Errorf("unknown archive subcommand %q", args[0])
	}
}

func (a *app) archiveList(ctx context.Context, args []string) error {
	fs := newFlagSet("archive list")
	query := fs.String("q", "", "match against title or vendor")
	if err := fs.Parse(args); err != nil {
		return err
	}
	docs, err := a.client.ListArchive(ctx, *query)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Println("no archived documents")
		return nil
	}
	for _, d := range docs {
		fmt.Printf("%-5d %-24s %-20s %s..%s\n", d.ID, d.ContractTitle, d.VendorName, d.StartDate, d.EndDate)
	}
	return nil
}

func (a *app) archiveUpload(ctx context.Context, args []string) error {
	fs := newFlagSet("archive upload")
	title := fs.String("title", "", "contract title")
	vendor := fs.String("vendor", "", "vendor name")
	value := fs.String("value", "", "contract value")
	currency := fs.String("currency", "", "currency code")
	start := fs.String("start", "", "start date (YYYY-MM-DD)")
	end := fs.String("end", "", "end date (YYYY-MM-DD)")
	termination := fs.String("termination", "", "termination period in days")
	file := fs.String("file", "", "PDF to archive")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" || *file == "" {
		return fmt.Errorf("-title and -file are required")
	}

	f, name, err := openForUpload(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	receipt, err := a.client.UploadArchive(ctx, contractpro.ArchiveUpload{
		ContractTitle:         *title,
		VendorName:            *vendor,
		ContractValue:         *value,
		Currency:              *currency,
		StartDate:             *start,
		EndDate:               *end,
		TerminationPeriodDays: *termination,
	}, name, f)
	if err != nil {
		return err
	}
	return printJSON(receipt)
}

func (a *app) archiveDownload(ctx context.Context, args []string) error {
	fs := newFlagSet("archive download")
	id := fs.Int("id", 0, "archive document id")
	out := fs.String("out", "", "destination path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("-id is required")
	}
	dest := *out
	if dest == "" {
		dest = filepath.Join(a.cfg.DownloadDir, fmt.Sprintf("archive_%d.pdf", *id))
	}
	if err := a.client.DownloadArchive(ctx, *id, dest); err != nil {
		return err
	}
	fmt.Println("saved", dest)
	return nil
}

func (a *app) archiveDelete(ctx context.Context, args []string) error {
	fs := newFlagSet("archive delete")
	id := fs.Int("id", 0, "archive document id")
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("-id is required")
	}
	if !*yes && !confirm(fmt.Sprintf("delete archived document %d?", *id)) {
		fmt.Println("aborted")
		return nil
	}
	if err := a.client.DeleteArchive(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("archived document %d deleted\n", *id)
	return nil
}

func (a *app) runReports(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: clmctl reports summary|export")
	}
	if err := a.guard.Require(); err != nil {
		return err
	}
	switch args[0] {
	case "summary":
		stats, err := a.client.ReportSummary(ctx)
		if err != nil {
			return err
		}
		return printJSON(stats)
	case "export":
		return a.reportsExport(ctx, args[1:])
	default:
		return fmt.Errorf("unknown reports subcommand %q", args[0])
	}
}

func (a *app) reportsExport(ctx context.Context, args []string) error {
	fs := newFlagSet("reports export")
	status := fs.String("status", "", "restrict to one status")
	from := fs.String("from", "", "from date (YYYY-MM-DD)")
	to := fs.String("to", "", "to date (YYYY-MM-DD)")
	out := fs.String("out", "", "destination path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	dest := *out
	if dest == "" {
		dest = filepath.Join(a.cfg.DownloadDir, "contracts_report.xlsx")
	}
	filter := contractpro.ReportFilter{
		Status:   contractpro.Status(*status),
		FromDate: *from,
		ToDate:   *to,
	}
	if err := a.client.ExportReport(ctx, filter, dest); err != nil {
		return err
	}
	fmt.Println("saved", dest)
	return nil
}

func (a *app) runUsers(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: clmctl users list|sync-ad")
	}
	if err := a.guard.Require(); err != nil {
		return err
	}
	switch args[0] {
	case "list":
		users, err := a.client.ListUsers(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			fmt.Printf("%-5d %-16s %-8s %s\n", u.ID, u.Username, u.Role, u.Email)
		}
		return nil
	case "sync-ad":
		result, err := a.client.SyncDirectory(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%d directory users)\n", result.Message, result.TotalADUsers)
		return nil
	default:
		return fmt.Errorf("unknown users subcommand %q", args[0])
	}
}

func (a *app) runEditor(ctx context.Context, args []string) error {
	if len(args) < 1 || args[0] != "config" {
		return fmt.Errorf("usage: clmctl editor config -id <id>")
	}
	if err := a.guard.Require(); err != nil {
		return err
	}
	fs := newFlagSet("editor config")
	id := fs.Int("id", 0, "contract id")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("-id is required")
	}
	sess, err := a.client.EditorConfig(ctx, *id)
	if err != nil {
		return err
	}
	return printJSON(sess)
}
