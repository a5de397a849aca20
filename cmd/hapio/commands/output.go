package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/hapio-client/internal/constants"
	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
)

const defaultJSONIndent = 2

// columns describes how one entity kind renders as table rows.
type columns[T hapio.Entity] struct {
	headers []string
	row     func(T) []string
}

func (s *session) writeJSON(value interface{}) error {
	encoder := json.NewEncoder(s.out)
	encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

func (s *session) writeYAML(value interface{}) error {
	encoder := yaml.NewEncoder(s.out)
	encoder.SetIndent(defaultJSONIndent)

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return encoder.Close()
}

func (s *session) writeTable(headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(s.out)
	table.Header(toAny(headers)...)

	for _, row := range rows {
		_ = table.Append(toAny(row)...)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func toMaps[T hapio.Entity](items []T) []map[string]interface{} {
	maps := make([]map[string]interface{}, len(items))
	for i, item := range items {
		maps[i] = item.ToMap(false)
	}

	return maps
}

func renderEntities[T hapio.Entity](s *session, items []T, cols columns[T]) error {
	switch s.format {
	case constants.FormatJSON:
		return s.writeJSON(toMaps(items))
	case constants.FormatYAML:
		return s.writeYAML(toMaps(items))
	}

	if len(items) == 0 {
		_, _ = fmt.Fprintln(s.out, "No results found")

		return nil
	}

	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = cols.row(item)
	}

	return s.writeTable(cols.headers, rows)
}

// renderEntity prints one entity; tables list every property.
func renderEntity[T hapio.Entity](s *session, item T) error {
	properties := item.ToMap(false)

	switch s.format {
	case constants.FormatJSON:
		return s.writeJSON(properties)
	case constants.FormatYAML:
		return s.writeYAML(properties)
	}

	keys := make([]string, 0, len(properties))
	for key := range properties {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	rows := make([][]string, len(keys))
	for i, key := range keys {
		rows[i] = []string{key, formatValue(properties[key])}
	}

	return s.writeTable([]string{"Property", "Value"}, rows)
}

// renderMessage prints a one-line result, or a {"result": ...} document.
func (s *session) renderMessage(key, message string) error {
	switch s.format {
	case constants.FormatJSON:
		return s.writeJSON(map[string]string{key: message})
	case constants.FormatYAML:
		return s.writeYAML(map[string]string{key: message})
	}

	_, err := fmt.Fprintln(s.out, message)

	return err
}

func toAny(values []string) []any {
	result := make([]any, len(values))
	for i, value := range values {
		result[i] = value
	}

	return result
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return constants.NotAvailable
	}

	return hapio.FormatDateTime(t)
}

func formatBool(value bool) string {
	if value {
		return constants.CheckMarkSymbol
	}

	return ""
}

func formatValue(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return constants.NotAvailable
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case map[string]interface{}, []interface{}:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprint(typed)
		}

		return string(encoded)
	default:
		return fmt.Sprint(typed)
	}
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

// listOptions are the flags shared by every list command.
type listOptions struct {
	page    int
	perPage int
	all     bool
	params  []string
}

func addListFlags(cmd *cobra.Command, opts *listOptions) {
	cmd.Flags().IntVar(&opts.page, "page", 0, "page number to fetch")
	cmd.Flags().IntVar(&opts.perPage, "per-page", constants.StandardPageSize, "results per page")
	cmd.Flags().BoolVar(&opts.all, "all", false, "fetch all pages")
	cmd.Flags().StringArrayVar(&opts.params, "param", nil, "extra query parameter as key=value (repeatable)")
}

func (o *listOptions) query() (hapio.QueryParams, error) {
	params, err := parseParams(o.params)
	if err != nil {
		return nil, err
	}

	if o.page > 0 {
		params.WithPage(o.page)
	}

	if o.perPage > 0 {
		params.WithPerPage(min(o.perPage, constants.MaxPageSize))
	}

	return params, nil
}

// parseParams turns key=value pairs into query parameters. A repeated key
// becomes a list.
func parseParams(pairs []string) (hapio.QueryParams, error) {
	params := hapio.NewQueryParams()

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidParameter, pair)
		}

		switch existing := params[key].(type) {
		case nil:
			params.With(key, value)
		case string:
			params.With(key, []string{existing, value})
		case []string:
			params.With(key, append(existing, value))
		}
	}

	return params, nil
}

// collectPages returns the items of first, and of every following page
// when all is set.
func collectPages[T hapio.Entity](ctx context.Context, first *hapio.PaginatedResponse[T], all bool) ([]T, error) {
	items := append([]T(nil), first.Items()...)
	if !all {
		return items, nil
	}

	page := first
	for page.HasMoreItems() {
		next, err := page.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d: %w", page.CurrentPageNumber()+1, err)
		}

		if next == nil {
			break
		}

		items = append(items, next.Items()...)
		page = next
	}

	return items, nil
}

type lister[T hapio.Entity] func(ctx context.Context, client hapio.Client, params hapio.QueryParams) (*hapio.PaginatedResponse[T], error)

func runList[T hapio.Entity](cmd *cobra.Command, opts *listOptions, list lister[T], cols columns[T]) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.finish()

	params, err := opts.query()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	page, err := list(ctx, s.client, params)
	if err != nil {
		return err
	}

	items, err := collectPages(ctx, page, opts.all)
	if err != nil {
		return err
	}

	err = renderEntities(s, items, cols)
	if err != nil {
		return err
	}

	if s.format == constants.FormatTable && !opts.all && page.TotalItems() > 0 {
		_, _ = fmt.Fprintf(s.out, "Page %d of %d (%d total)\n",
			page.CurrentPageNumber(), page.LastPageNumber(), page.TotalItems())
	}

	return nil
}

// runGet fetches and prints a single entity.
func runGet[T hapio.Entity](cmd *cobra.Command, get func(ctx context.Context, client hapio.Client) (T, error)) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.finish()

	item, err := get(cmd.Context(), s.client)
	if err != nil {
		return err
	}

	return renderEntity(s, item)
}

// runDelete reports the outcome of a delete-like call.
func runDelete(cmd *cobra.Command, what string, remove func(ctx context.Context, client hapio.Client) (bool, error)) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.finish()

	done, err := remove(cmd.Context(), s.client)
	if err != nil {
		return err
	}

	if !done {
		return s.renderMessage("result", what+" was not confirmed by the API")
	}

	return s.renderMessage("result", what+" deleted")
}
