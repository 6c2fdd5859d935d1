package sqlite

import (
	"context"
	"database/sql"

	"labelboard/internal/domain"
)

// snapshotTx groups the writes of one Save
type snapshotTx struct {
	tx *sql.Tx
}

func (s *SnapshotStore) begin(ctx context.Context) (*snapshotTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &snapshotTx{tx: tx}, nil
}

// replaceTickets swaps the ticket table contents, keeping input order
func (t *snapshotTx) replaceTickets(tickets []domain.Ticket) error {
	if _, err := t.tx.Exec(`DELETE FROM tickets`); err != nil {
		return err
	}
	stmt, err := t.tx.Prepare(`
		INSERT OR REPLACE INTO tickets (id, title, content, label, position)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, tk := range tickets {
		if _, err := stmt.Exec(tk.ID, tk.Title, tk.Content, tk.Label, i); err != nil {
			return err
		}
	}
	return nil
}

// replaceLabels swaps the label table contents with each label's color
func (t *snapshotTx) replaceLabels(names []string, colors domain.ColorTable) error {
	if _, err := t.tx.Exec(`DELETE FROM labels`); err != nil {
		return err
	}
	stmt, err := t.tx.Prepare(`
		INSERT OR REPLACE INTO labels (name, color, position)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, name := range names {
		if _, err := stmt.Exec(name, colors[name], i); err != nil {
			return err
		}
	}
	return nil
}

// setMeta writes key/value pairs
func (t *snapshotTx) setMeta(values map[string]string) error {
	for k, v := range values {
		if _, err := t.tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return err
		}
	}
	return nil
}

// Commit commits the transaction
func (t *snapshotTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *snapshotTx) Rollback() error {
	return t.tx.Rollback()
}
