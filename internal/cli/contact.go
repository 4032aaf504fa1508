package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/keeper/internal/app"
	"github.com/mesh-intelligence/keeper/pkg/types"
)

func newContactCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contact",
		Aliases: []string{"contacts"},
		Short:   "Manage contacts",
	}
	cmd.AddCommand(
		newContactAddCmd(s),
		newContactListCmd(s),
		newContactShowCmd(s),
		newContactEditCmd(s),
		newContactDeleteCmd(s),
		newContactSampleCmd(s),
	)
	return cmd
}

func newContactAddCmd(s *session) *cobra.Command {
	var in app.ContactInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		Long: `Add a contact. Name and phone are required; email and address are
optional. The contact gets the next free id and the current time as its
date added.

Example:
  keeper contact add --name "Alice Smith" --phone 555-1234
  keeper contact add --name Bob --phone 555-9999 --email bob@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.open(cmd)
			if err != nil {
				return err
			}
			c, err := app.AddContact(a.Contacts, in)
			if c.ID == 0 {
				return err
			}
			if perr := s.renderContact(cmd.OutOrStdout(), "Added", c); perr != nil {
				return perr
			}
			return saveFailed(cmd, err)
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "contact name (required)")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number (required)")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Address, "address", "", "postal address")
	return cmd
}

func newContactListCmd(s *session) *cobra.Command {
	var q app.ContactQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Long: `List contacts in insertion order, optionally narrowed by a
case-insensitive search over name, phone and email.

--sort may be repeated. Each occurrence acts like a click on that column
header: naming the same column twice in a row flips the direction.

Example:
  keeper contact list
  keeper contact list --search smith
  keeper contact list --sort name --sort name
  keeper contact list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.open(cmd)
			if err != nil {
				return err
			}
			page, err := app.ListContacts(a.Contacts, a.ContactView, q)
			if err != nil {
				return err
			}
			if s.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), page.Contacts)
			}
			printContactTable(cmd.OutOrStdout(), page)
			return nil
		},
	}
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "case-insensitive search over name, phone and email")
	cmd.Flags().StringArrayVar(&q.Sort, "sort", nil, "sort by column (id, name, phone, email, address, date_added); repeatable")
	cmd.Flags().BoolVar(&q.Reverse, "reverse", false, "start the first sort in descending order")
	return cmd
}

func newContactShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := s.open(cmd)
			if err != nil {
				return err
			}
			c, err := app.ShowContact(a.Contacts, id)
			if err != nil {
				return err
			}
			return s.renderContact(cmd.OutOrStdout(), "", c)
		},
	}
}

func newContactEditCmd(s *session) *cobra.Command {
	var name, phone, email, address string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a contact",
		Long: `Edit the fields of an existing contact. Only the flags given are
changed; id and date added never change. Name and phone cannot be
cleared.

Example:
  keeper contact edit 3 --email alice@example.com
  keeper contact edit 3 --address ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var p app.ContactPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				p.Name = &name
			}
			if flags.Changed("phone") {
				p.Phone = &phone
			}
			if flags.Changed("email") {
				p.Email = &email
			}
			if flags.Changed("address") {
				p.Address = &address
			}

			a, err := s.open(cmd)
			if err != nil {
				return err
			}
			c, err := app.EditContact(a.Contacts, id, p)
			if c.ID == 0 {
				return err
			}
			if perr := s.renderContact(cmd.OutOrStdout(), "Updated", c); perr != nil {
				return perr
			}
			return saveFailed(cmd, err)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&phone, "phone", "", "new phone number")
	cmd.Flags().StringVar(&email, "email", "", "new email address")
	cmd.Flags().StringVar(&address, "address", "", "new postal address")
	return cmd
}

func newContactDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a contact",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := s.open(cmd)
			if err != nil {
				return err
			}
			err = app.DeleteContact(a.Contacts, id)
			if err != nil && !errors.Is(err, types.ErrPersistence) {
				return err
			}
			if s.flags.jsonMode {
				if perr := printJSON(cmd.OutOrStdout(), deletedOutput{Deleted: id}); perr != nil {
					return perr
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted contact %d\n", id)
			}
			return saveFailed(cmd, err)
		},
	}
}

func newContactSampleCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Add the demo contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := s.open(cmd)
			if err != nil {
				return err
			}
			added, err := app.AddSampleContacts(a.Contacts)
			if s.flags.jsonMode {
				if perr := printJSON(cmd.OutOrStdout(), added); perr != nil {
					return perr
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d sample contacts\n", len(added))
			}
			return saveFailed(cmd, err)
		},
	}
}

// renderContact prints c as JSON or as labelled lines headed by verb.
func (s *session) renderContact(w io.Writer, verb string, c types.Contact) error {
	if s.flags.jsonMode {
		return printJSON(w, c)
	}
	if verb != "" {
		fmt.Fprintf(w, "%s contact %d\n", verb, c.ID)
	}
	fmt.Fprintf(w, "ID:      %d\n", c.ID)
	fmt.Fprintf(w, "Name:    %s\n", c.Name)
	fmt.Fprintf(w, "Phone:   %s\n", c.Phone)
	fmt.Fprintf(w, "Email:   %s\n", c.Email)
	fmt.Fprintf(w, "Address: %s\n", c.Address)
	fmt.Fprintf(w, "Added:   %s\n", c.DateAdded)
	return nil
}

func printContactTable(w io.Writer, page app.ContactPage) {
	if len(page.Contacts) == 0 {
		fmt.Fprintln(w, "No contacts found.")
		fmt.Fprintln(w, page.Status)
		return
	}
	rows := make([][]string, len(page.Contacts))
	for i, c := range page.Contacts {
		rows[i] = []string{
			strconv.Itoa(c.ID),
			truncate(c.Name, 30),
			c.Phone,
			c.Email,
			truncate(c.Address, 30),
			c.DateAdded,
		}
	}
	printTable(w, []string{"ID", "NAME", "PHONE", "EMAIL", "ADDRESS", "ADDED"}, rows)
	fmt.Fprintln(w, page.Status)
}
