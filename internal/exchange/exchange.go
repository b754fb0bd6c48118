// Package exchange converts schedules and seller lists to and from the
// plain text formats organisers pass around in spreadsheets.
package exchange

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/matchmaker/internal/event"
	"github.com/javiermolinar/matchmaker/internal/schedule"
	"github.com/javiermolinar/matchmaker/internal/sessions"
)

const crlf = "\r\n"

// WriteCSV writes one row per buyer (name, country, block) followed by one
// column per session, ordered by block then start time. Session cells hold
// the seller's name and are always quoted. Cells whose seller is not in
// sellers are written empty.
func WriteCSV(w io.Writer, s *schedule.Schedule, buyers []event.Buyer, sellers []event.Seller, list []event.Session) error {
	ordered := append([]event.Session(nil), list...)
	sessions.Sort(ordered)
	names := event.SellerNames(sellers)

	bw := bufio.NewWriter(w)

	header := []string{"Buyer Name", "Buyer Country", "Session Block"}
	for _, sess := range ordered {
		header = append(header, field(sess.Label()))
	}
	bw.WriteString(strings.Join(header, ",") + crlf)

	for _, b := range buyers {
		row := []string{field(b.Name), field(b.Country), string(b.Block)}
		for _, sess := range ordered {
			sellerID, _ := s.Get(b.ID, sess.ID)
			row = append(row, quote(names[sellerID]))
		}
		bw.WriteString(strings.Join(row, ",") + crlf)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// ParseSellerNames reads one seller name per line. Blank lines are skipped.
// If the first non-blank line contains "name" in any case it is taken as a
// header. Each name is trimmed and one layer of surrounding double quotes is
// removed, turning "" back into ".
func ParseSellerNames(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	if strings.Contains(strings.ToLower(lines[0]), "name") {
		lines = lines[1:]
	}

	var names []string
	for _, line := range lines {
		name := strings.TrimSpace(line)
		if strings.HasPrefix(name, `"`) && strings.HasSuffix(name, `"`) {
			name = strings.TrimSuffix(strings.TrimPrefix(name, `"`), `"`)
			name = strings.ReplaceAll(name, `""`, `"`)
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ReadSellerNames is ParseSellerNames over a reader.
func ReadSellerNames(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading seller list: %w", err)
	}
	return ParseSellerNames(string(data)), nil
}

func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// field quotes v only when it would otherwise break the row.
func field(v string) string {
	if strings.ContainsAny(v, ",\"\r\n") {
		return quote(v)
	}
	return v
}
