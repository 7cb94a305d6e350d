package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	contractpro "github.com/wellnessvoyage60-gif/contract-management-app"
	"github.com/wellnessvoyage60-gif/contract-management-app/pkg/contractview"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func (a *app) runContracts(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: clmctl contracts list|show|status|delete|upload|download")
	}
	if err := a.guard.Require(); err != nil {
		return err
	}
	switch args[0] {
	case "list":
		return a.contractsList(ctx, args[1:])
	case "show":
		return a.contractsShow(ctx, args[1:])
	case "status":
		return a.contractsStatus(ctx, args[1:])
	case "delete":
		return a.contractsDelete(ctx, args[1:])
	case "upload":
		return a.contractsUpload(ctx, args[1:])
	case "download":
		return a.contractsDownload(ctx, args[1:])
	default:
		return fmt.Errorf("unknown contracts subcommand %q", args[0])
	}
}

func (a *app) contractsList(ctx context.Context, args []string) error {
	fs := newFlagSet("contracts list")
	limit := fs.Int("limit", 0, "maximum number of contracts (0 = all)")
	query := fs.String("q", "", "match against title, number or vendor")
	status := fs.String("status", contractview.FilterAll, "status filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	contracts, err := a.client.ListContracts(ctx, *limit)
	if err != nil {
		return err
	}
	contracts = contractview.Filtered(contracts, *query, *status)
	if len(contracts) == 0 {
		fmt.Println("no contracts")
		return nil
	}
	for _, c := range contracts {
		fmt.Printf("%-5d %-16s %-15s %-24s %s\n", c.ID, c.ContractNumber, c.Status, c.VendorName, c.Title)
	}
	return nil
}

func (a *app) contractsShow(ctx context.Context, args []string) error {
	fs := newFlagSet("contracts show")
	id := fs.Int("id", 0, "contract id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("-id is required")
	}

	vm := contractview.New(a.client)
	if err := vm.Load(ctx, *id); err != nil {
		return err
	}
	if err := printJSON(vm.Contract()); err != nil {
		return err
	}
	for _, act := range vm.Activities() {
		fmt.Printf("%s  %-12s %s\n", act.CreatedAt, act.User, act.Action)
	}
	return nil
}

func (a *app) contractsStatus(ctx context.Context, args []string) error {
	fs := newFlagSet("contracts status")
	id := fs.Int("id", 0, "contract id")
	to := fs.String("to", "", "target status: "+statusNames())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 || *to == "" {
		return fmt.Errorf("-id and -to are required")
	}

	vm := contractview.New(a.client)
	if err := vm.Load(ctx, *id); err != nil {
		return err
	}
	if err := vm.RequestTransition(ctx, contractpro.Status(*to)); err != nil {
		return err
	}
	fmt.Printf("contract %d is now %s\n", *id, vm.Contract().Status)
	return nil
}

func (a *app) contractsDelete(ctx context.Context, args []string) error {
	fs := newFlagSet("contracts delete")
	id := fs.Int("id", 0, "contract id")
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("-id is required")
	}
	if !*yes && !confirm(fmt.Sprintf("delete contract %d?", *id)) {
		fmt.Println("aborted")
		return nil
	}
	if err := a.client.DeleteContract(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("contract %d deleted\n", *id)
	return nil
}

func (a *app) contractsUpload(ctx context.Context, args []string) error {
	fs := newFlagSet("contracts upload")
	title := fs.String("title", "", "contract title")
	category := fs.String("category", "", "category")
	vendor := fs.String("vendor", "", "vendor name")
	value := fs.String("value", "", "contract value")
	sla := fs.Int("sla", 0, "SLA days")
	reviewer := fs.Int("reviewer", 0, "reviewer user id")
	file := fs.String("file", "", "document to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" || *file == "" {
		return fmt.Errorf("-title and -file are required")
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	receipt, err := a.client.UploadContract(ctx, contractpro.ContractUpload{
		Title:         *title,
		Category:      *category,
		VendorName:    *vendor,
		ContractValue: *value,
		SLADays:       *sla,
		ReviewerID:    *reviewer,
	}, filepath.Base(*file), f)
	if err != nil {
		return err
	}
	return printJSON(receipt)
}

func (a *app) contractsDownload(ctx context.Context, args []string) error {
	fs := newFlagSet("contracts download")
	id := fs.Int("id", 0, "contract id")
	out := fs.String("out", "", "destination path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("-id is required")
	}
	dest := *out
	if dest == "" {
		dest = filepath.Join(a.cfg.DownloadDir, fmt.Sprintf("contract_%d.docx", *id))
	}
	if err := a.client.DownloadContract(ctx, *id, dest); err != nil {
		return err
	}
	fmt.Println("saved", dest)
	return nil
}

func statusNames() string {
	names := make([]string, 0, len(contractpro.Statuses))
	for _, s := range contractpro.Statuses {
		names = append(names, string(s))
	}
	return strings.Join(names, "|")
}

// openForUpload is shared by the archive subcommands.
func openForUpload(path string) (io.ReadCloser, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	return f, filepath.Base(path), nil
}
