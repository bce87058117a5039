package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/mesh-intelligence/scriptbox/internal/library"
	"github.com/mesh-intelligence/scriptbox/internal/status"
	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

// previewWidth bounds the one-line text preview in listings.
const previewWidth = 72

const savedAtLayout = "2006-01-02 15:04:05 MST"

var (
	starColor = color.New(color.FgYellow)
	dim       = color.New(color.Faint).SprintFunc()
	bold      = color.New(color.Bold).SprintFunc()
	proColor  = color.New(color.FgGreen, color.Bold).SprintFunc()
	freeColor = color.New(color.FgYellow).SprintFunc()
	errColor  = color.New(color.FgRed).SprintFunc()
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

const starOff = "☆"

func starOn() string {
	return starColor.Sprint("★")
}

func star(it types.LibraryItem) string {
	if it.Favorite {
		return starOn()
	}
	return starOff
}

func preview(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	line = strings.TrimSpace(line)
	if utf8.RuneCountInString(line) <= previewWidth {
		return line
	}
	r := []rune(line)
	return string(r[:previewWidth-1]) + "…"
}

// printItems renders a view. An empty view prints EmptyViewMessage.
func printItems(w io.Writer, items []types.LibraryItem, jsonMode bool) error {
	if jsonMode {
		return writeJSON(w, items)
	}
	if len(items) == 0 {
		fmt.Fprintln(w, library.EmptyViewMessage)
		return nil
	}
	for _, it := range items {
		fmt.Fprintf(w, "%s %s  %s  %s\n", star(it), it.Timestamp, bold(it.DisplayTitle()), dim("("+it.EffectiveFolder()+")"))
		fmt.Fprintf(w, "    %s\n", preview(it.Text))
	}
	return nil
}

func printItem(w io.Writer, it types.LibraryItem, jsonMode, raw bool) error {
	switch {
	case jsonMode:
		return writeJSON(w, it)
	case raw:
		_, err := fmt.Fprintln(w, it.Text)
		return err
	}
	fmt.Fprintf(w, "%s %s\n", star(it), bold(it.DisplayTitle()))
	fmt.Fprintf(w, "Folder:    %s\n", it.EffectiveFolder())
	fmt.Fprintf(w, "Saved:     %s\n", savedAt(it))
	if len(it.Tags) > 0 {
		fmt.Fprintf(w, "Tags:      %s\n", strings.Join(it.Tags, ", "))
	}
	fmt.Fprintf(w, "\n%s\n", it.Text)
	return nil
}

// savedAt renders the save time in local time, falling back to the raw
// timestamp when it does not parse.
func savedAt(it types.LibraryItem) string {
	t := it.SavedAt()
	if t.IsZero() {
		return it.Timestamp
	}
	return t.Local().Format(savedAtLayout)
}

func printNames(w io.Writer, names []string, jsonMode bool) error {
	if jsonMode {
		return writeJSON(w, names)
	}
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
	return nil
}

// statusOutput is the JSON form of the status command.
type statusOutput struct {
	Badge string       `json:"badge"`
	IsPro bool         `json:"isPro"`
	Usage status.Usage `json:"usage"`
	Error string       `json:"error,omitempty"`
}

func printStatus(w io.Writer, snap status.Snapshot, jsonMode bool) error {
	badge := status.Badge(snap)
	if jsonMode {
		out := statusOutput{Badge: badge, IsPro: snap.IsPro, Usage: snap.Usage}
		if snap.Err != nil {
			out.Error = snap.Err.Error()
		}
		return writeJSON(w, out)
	}

	switch badge {
	case status.BadgePro:
		badge = proColor(badge)
	case status.BadgeFree:
		badge = freeColor(badge)
	default:
		badge = errColor(badge)
	}
	fmt.Fprintln(w, badge)
	fmt.Fprintln(w, status.UsageLine(snap))
	return nil
}
