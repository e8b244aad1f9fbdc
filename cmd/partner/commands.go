package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	apppartner "github.com/forniture-store/backend/internal/application/partner"
	"github.com/forniture-store/backend/internal/domain/shared"
)

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

type command struct {
	in  io.Reader
	out io.Writer
}

// actions binds one service to the CLI verbs. C, U and F are the create,
// update and list filter types; R is the response.
type actions[C, U, R, F any] struct {
	create     func(context.Context, C) (*R, error)
	update     func(context.Context, uuid.UUID, U) (*R, error)
	get        func(context.Context, uuid.UUID) (*R, error)
	list       func(context.Context, F) (*shared.Paginated[R], error)
	remove     func(context.Context, uuid.UUID) error
	activate   func(context.Context, uuid.UUID) (*R, error)
	deactivate func(context.Context, uuid.UUID) (*R, error)
	filter     func(search string, page, pageSize int) F
}

func customerActions(svc *apppartner.CustomerService) actions[apppartner.CreateCustomerRequest, apppartner.UpdateCustomerRequest, apppartner.CustomerResponse, apppartner.CustomerListFilter] {
	return actions[apppartner.CreateCustomerRequest, apppartner.UpdateCustomerRequest, apppartner.CustomerResponse, apppartner.CustomerListFilter]{
		create:     svc.Create,
		update:     svc.Update,
		get:        svc.GetByID,
		list:       svc.List,
		remove:     svc.Delete,
		activate:   svc.Activate,
		deactivate: svc.Deactivate,
		filter: func(search string, page, pageSize int) apppartner.CustomerListFilter {
			return apppartner.CustomerListFilter{Search: search, Page: page, PageSize: pageSize}
		},
	}
}

func supplierActions(svc *apppartner.SupplierService) actions[apppartner.CreateSupplierRequest, apppartner.UpdateSupplierRequest, apppartner.SupplierResponse, apppartner.SupplierListFilter] {
	return actions[apppartner.CreateSupplierRequest, apppartner.UpdateSupplierRequest, apppartner.SupplierResponse, apppartner.SupplierListFilter]{
		create:     svc.Create,
		update:     svc.Update,
		get:        svc.GetByID,
		list:       svc.List,
		remove:     svc.Delete,
		activate:   svc.Activate,
		deactivate: svc.Deactivate,
		filter: func(search string, page, pageSize int) apppartner.SupplierListFilter {
			return apppartner.SupplierListFilter{Search: search, Page: page, PageSize: pageSize}
		},
	}
}

func dispatch[C, U, R, F any](ctx context.Context, cmd command, a actions[C, U, R, F], action string, args []string) error {
	switch action {
	case "create":
		if len(args) != 1 {
			return usageError{"create takes one request file"}
		}
		var req C
		if err := cmd.decode(args[0], &req); err != nil {
			return err
		}
		return cmd.print(a.create(ctx, req))

	case "update":
		if len(args) != 2 {
			return usageError{"update takes an id and a request file"}
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var req U
		if err := cmd.decode(args[1], &req); err != nil {
			return err
		}
		return cmd.print(a.update(ctx, id, req))

	case "get", "delete", "activate", "deactivate":
		if len(args) != 1 {
			return usageError{action + " takes one id"}
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		switch action {
		case "get":
			return cmd.print(a.get(ctx, id))
		case "activate":
			return cmd.print(a.activate(ctx, id))
		case "deactivate":
			return cmd.print(a.deactivate(ctx, id))
		}
		return a.remove(ctx, id)

	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		search := fs.String("search", "", "Accent-insensitive name or tax id search")
		page := fs.Int("page", 1, "Page number")
		pageSize := fs.Int("page-size", 20, "Items per page")
		if err := fs.Parse(args); err != nil {
			return usageError{err.Error()}
		}
		result, err := a.list(ctx, a.filter(*search, *page, *pageSize))
		if err != nil {
			return err
		}
		return writeJSON(cmd.out, result)

	default:
		return usageError{fmt.Sprintf("unknown action %q", action)}
	}
}

// decode reads a JSON request from path, or from stdin when path is "-".
func (c command) decode(path string, v any) error {
	r := c.in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open request: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return usageError{fmt.Sprintf("invalid request: %v", err)}
	}
	return nil
}

func (c command) print(v any, err error) error {
	if err != nil {
		return err
	}
	return writeJSON(c.out, v)
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, usageError{fmt.Sprintf("invalid id %q", s)}
	}
	return id, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func validationReport(verrs shared.ValidationErrors) map[string]map[string][]string {
	fields := make(map[string][]string, len(verrs))
	for _, field := range verrs.Fields() {
		fields[field] = verrs.Messages(field)
	}
	return map[string]map[string][]string{"errors": fields}
}
