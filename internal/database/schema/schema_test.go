package schema

import (
	"context"
	"errors"
	"strings"
	"testing"

	"workly/internal/database"
)

type fakeDB struct {
	tx *fakeTx
}

type fakeTx struct {
	executed   []string
	failOn     string
	committed  bool
	rolledBack bool
}

func (d *fakeDB) Ping(_ context.Context) error { return nil }
func (d *fakeDB) Close() error                 { return nil }

func (d *fakeDB) Exec(_ context.Context, _ string, _ ...any) (int64, error) {
	return 0, errors.New("schema must be applied through a transaction")
}

func (d *fakeDB) Query(_ context.Context, _ string, _ ...any) (database.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (d *fakeDB) QueryRow(_ context.Context, _ string, _ ...any) database.Row {
	return nil
}

func (d *fakeDB) Begin(_ context.Context) (database.Tx, error) {
	return d.tx, nil
}

func (t *fakeTx) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	if t.failOn != "" && strings.Contains(query, t.failOn) {
		return 0, errors.New("boom")
	}
	t.executed = append(t.executed, query)
	return 0, nil
}

func (t *fakeTx) Query(_ context.Context, _ string, _ ...any) (database.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (t *fakeTx) QueryRow(_ context.Context, _ string, _ ...any) database.Row {
	return nil
}

func (t *fakeTx) Commit(_ context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	t.rolledBack = true
	return nil
}

func TestEnsure_AppliesAllStatementsInOneTransaction(t *testing.T) {
	tx := &fakeTx{}
	db := &fakeDB{tx: tx}

	if err := Ensure(context.Background(), db); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	if len(tx.executed) != len(statements) {
		t.Fatalf("executed %d statements, want %d", len(tx.executed), len(statements))
	}
	if !tx.committed {
		t.Fatalf("transaction not committed")
	}
	if tx.rolledBack {
		t.Fatalf("unexpected rollback")
	}

	found := false
	for _, stmt := range tx.executed {
		if strings.Contains(stmt, "uq_applications_job_applicant") {
			found = true
		}
	}
	if !found {
		t.Fatalf("unique index on applications (job_id, applicant_id) missing from schema")
	}
}

func TestEnsure_FailureRollsBack(t *testing.T) {
	tx := &fakeTx{failOn: "applications"}
	db := &fakeDB{tx: tx}

	if err := Ensure(context.Background(), db); err == nil {
		t.Fatalf("expected error")
	}
	if !tx.rolledBack {
		t.Fatalf("failed apply must roll back")
	}
	if tx.committed {
		t.Fatalf("failed apply must not commit")
	}
}

func TestEnsure_NilDB(t *testing.T) {
	if err := Ensure(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}
