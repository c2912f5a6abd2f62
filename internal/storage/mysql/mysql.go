package mysql

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"hyperfunnel/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

const dateLayout = "2006-01-02"

func fmtDate(t time.Time) string { return t.UTC().Format(dateLayout) }

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// listJSON marshals a string list for a JSON text column; nil stays NULL.
func listJSON(v []string) any {
	if v == nil {
		return nil
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func parseList(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}

// statusesIn renders an IN clause placeholder list plus its args.
func statusesIn(statuses []domain.BookingStatus) (string, []any) {
	ph := make([]string, len(statuses))
	args := make([]any, len(statuses))
	for i, s := range statuses {
		ph[i] = "?"
		args[i] = string(s)
	}
	return strings.Join(ph, ","), args
}
