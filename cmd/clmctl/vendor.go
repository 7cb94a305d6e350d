package main

import (
	"context"
	"fmt"

	contractpro "github.com/wellnessvoyage60-gif/contract-management-app"
)

func (a *app) runVendor(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: clmctl vendor create|profile|change-password|contracts|feedback")
	}
	if err := a.guard.Require(); err != nil {
		return err
	}
	switch args[0] {
	case "create":
		return a.vendorCreate(ctx, args[1:])
	case "profile":
		return a.vendorProfile(ctx, args[1:])
	case "change-password":
		return a.vendorChangePassword(ctx, args[1:])
	case "contracts":
		return a.vendorContracts(ctx)
	case "feedback":
		return a.vendorFeedback(ctx, args[1:])
	default:
		return fmt.Errorf("unknown vendor subcommand %q", args[0])
	}
}

func (a *app) vendorCreate(ctx context.Context, args []string) error {
	fs := newFlagSet("vendor create")
	username := fs.String("username", "", "vendor login name")
	email := fs.String("email", "", "contact email")
	fullName := fs.String("name", "", "contact full name")
	company := fs.String("company", "", "company name")
	password := fs.String("password", "", "initial password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *email == "" {
		return fmt.Errorf("-username and -email are required")
	}
	pw := *password
	if pw == "" {
		var err error
		if pw, err = promptLine("initial password: "); err != nil {
			return err
		}
	}
	receipt, err := a.client.CreateVendor(ctx, contractpro.NewVendor{
		Username: *username,
		Email:    *email,
		FullName: *fullName,
		Company:  *company,
		Password: pw,
	})
	if err != nil {
		return err
	}
	return printJSON(receipt)
}

func (a *app) vendorProfile(ctx context.Context, args []string) error {
	fs := newFlagSet("vendor profile")
	fullName := fs.String("name", "", "update contact full name")
	company := fs.String("company", "", "update company name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fullName != "" || *company != "" {
		if err := a.client.UpdateVendorProfile(ctx, *fullName, *company); err != nil {
			return err
		}
		fmt.Println("profile updated")
	}
	profile, err := a.client.VendorProfile(ctx)
	if err != nil {
		return err
	}
	return printJSON(profile)
}

func (a *app) vendorChangePassword(ctx context.Context, args []string) error {
	fs := newFlagSet("vendor change-password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	oldPw, err := promptLine("current password: ")
	if err != nil {
		return err
	}
	newPw, err := promptLine("new password: ")
	if err != nil {
		return err
	}
	if err := a.client.ChangeVendorPassword(ctx, oldPw, newPw); err != nil {
		return err
	}
	fmt.Println("password changed")
	return nil
}

func (a *app) vendorContracts(ctx context.Context) error {
	contracts, err := a.client.VendorContracts(ctx)
	if err != nil {
		return err
	}
	if len(contracts) == 0 {
		fmt.Println("no contracts assigned")
		return nil
	}
	for _, c := range contracts {
		fmt.Printf("%-5d %-16s %s\n", c.ID, c.ContractNumber, c.Title)
	}
	return nil
}

func (a *app) vendorFeedback(ctx context.Context, args []string) error {
	fs := newFlagSet("vendor feedback")
	id := fs.Int("id", 0, "contract id")
	comments := fs.String("comments", "", "feedback text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 || *comments == "" {
		return fmt.Errorf("-id and -comments are required")
	}
	if err := a.client.SubmitVendorFeedback(ctx, *id, *comments); err != nil {
		return err
	}
	fmt.Println("feedback submitted")
	return nil
}
