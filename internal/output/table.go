package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/resend/resend-cli/pkg/types"
)

// NoResults is printed instead of an empty table
const NoResults = "No results found."

// table holds the column headers and one row per resource
type table struct {
	headers []string
	rows    [][]string
	single  bool
}

var (
	emailHeaders    = []string{"ID", "TO", "SUBJECT", "STATUS", "CREATED"}
	domainHeaders   = []string{"ID", "NAME", "STATUS", "REGION"}
	apiKeyHeaders   = []string{"ID", "NAME", "CREATED"}
	templateHeaders = []string{"ID", "NAME", "SUBJECT", "CREATED"}
	profileHeaders  = []string{"PROFILE", "ACTIVE", "API KEY", "FINGERPRINT"}
)

func emailRow(e types.Email) []string {
	return []string{e.ID, strings.Join(e.To, ", "), types.Deref(e.Subject), types.Deref(e.LastEvent), types.Deref(e.CreatedAt)}
}

func domainRow(d types.Domain) []string {
	return []string{d.ID, d.Name, types.Deref(d.Status), types.Deref(d.Region)}
}

func apiKeyRow(k types.APIKey) []string {
	return []string{k.ID, k.Name, types.Deref(k.CreatedAt)}
}

func templateRow(t types.Template) []string {
	return []string{t.ID, t.Name, types.Deref(t.Subject), types.Deref(t.CreatedAt)}
}

func profileRow(p types.ProfileSummary) []string {
	active := ""
	if p.Active {
		active = "✓"
	}
	return []string{p.Name, active, p.MaskedKey, p.Fingerprint}
}

func list[T any](headers []string, items []T, row func(T) []string) table {
	t := table{headers: headers, rows: make([][]string, 0, len(items))}
	for _, item := range items {
		t.rows = append(t.rows, row(item))
	}
	return t
}

func one[T any](headers []string, item T, row func(T) []string) table {
	return table{headers: headers, rows: [][]string{row(item)}, single: true}
}

// tabulate selects columns and rows by resource kind
func tabulate(v interface{}) (table, error) {
	switch x := v.(type) {
	case []types.Email:
		return list(emailHeaders, x, emailRow), nil
	case *types.Email:
		return one(emailHeaders, *x, emailRow), nil
	case []types.Domain:
		return list(domainHeaders, x, domainRow), nil
	case *types.Domain:
		return one(domainHeaders, *x, domainRow), nil
	case []types.APIKey:
		return list(apiKeyHeaders, x, apiKeyRow), nil
	case *types.APIKey:
		return one(apiKeyHeaders, *x, apiKeyRow), nil
	case []types.Template:
		return list(templateHeaders, x, templateRow), nil
	case *types.Template:
		return one(templateHeaders, *x, templateRow), nil
	case []types.ProfileSummary:
		return list(profileHeaders, x, profileRow), nil
	case *types.ProfileSummary:
		return one(profileHeaders, *x, profileRow), nil
	default:
		return table{}, fmt.Errorf("no table layout for %T", v)
	}
}

func writeTable(w io.Writer, t table) error {
	if t.single {
		return writeSingle(w, t)
	}

	if len(t.rows) == 0 {
		_, err := fmt.Fprintln(w, NoResults)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.headers, "\t"))

	dashes := make([]string, len(t.headers))
	for i, h := range t.headers {
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))

	for _, row := range t.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func writeSingle(w io.Writer, t table) error {
	for i, h := range t.headers {
		if _, err := fmt.Fprintf(w, "%s: %s\n", h, t.rows[0][i]); err != nil {
			return err
		}
	}
	return nil
}
