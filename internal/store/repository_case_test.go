package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/models"
)

func newTestCaseRepo(t *testing.T) (*caseRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &caseRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func caseRow(c *models.Case) *sqlmock.Rows {
	return sqlmock.
		NewRows(caseColumns).
		AddRow(c.Domain, c.CaseID, c.Type, c.Name, c.OwnerID, c.OpenedBy, c.ModifiedBy,
			[]byte(`{"age":"30"}`), c.Closed, c.Deleted, c.ServerModifiedOn, c.Sequence,
			[]byte(`[{"kind":"create"}]`), []byte(`[]`))
}

func TestGetCase_Success(t *testing.T) {
	repo, mock, db := newTestCaseRepo(t)
	defer db.Close()

	want := &models.Case{
		Domain:           "test-domain",
		CaseID:           "case-a",
		Type:             "patient",
		Name:             "Apple",
		OwnerID:          "owner-x",
		OpenedBy:         "user-1",
		ModifiedBy:       "user-1",
		ServerModifiedOn: time.Now().UTC(),
		Sequence:         5,
	}

	mock.ExpectQuery("SELECT domain, case_id").
		WithArgs("test-domain", "case-a").
		WillReturnRows(caseRow(want))

	got, err := repo.GetCase(context.Background(), "test-domain", "case-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CaseID != "case-a" || got.OwnerID != "owner-x" {
		t.Errorf("unexpected case: %+v", got)
	}
	if got.Properties["age"] != "30" {
		t.Errorf("properties not decoded: %+v", got.Properties)
	}
	if got.Sequence != 5 {
		t.Errorf("sequence not scanned: %d", got.Sequence)
	}
	if len(got.Actions) != 1 || got.Actions[0].Kind != models.ActionCreate {
		t.Errorf("actions not decoded: %+v", got.Actions)
	}
}

func TestGetCase_NotFound(t *testing.T) {
	repo, mock, db := newTestCaseRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT domain, case_id").
		WithArgs("test-domain", "no-such-case").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetCase(context.Background(), "test-domain", "no-such-case")
	if !errors.Is(err, ErrCaseNotFound) {
		t.Fatalf("expected ErrCaseNotFound, got %v", err)
	}
}

func TestGetCases_EmptyInput(t *testing.T) {
	repo, _, db := newTestCaseRepo(t)
	defer db.Close()

	got, err := repo.GetCases(context.Background(), "test-domain", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil result for empty input, got %+v", got)
	}
}

func TestGetCaseIDsOwnedBy_Success(t *testing.T) {
	repo, mock, db := newTestCaseRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"case_id"}).
		AddRow("case-a").
		AddRow("case-b")

	mock.ExpectQuery("SELECT case_id FROM cases").
		WillReturnRows(rows)

	got, err := repo.GetCaseIDsOwnedBy(context.Background(), "test-domain", []string{"owner-x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "case-a" || got[1] != "case-b" {
		t.Errorf("unexpected IDs: %v", got)
	}
}

func TestCommitCases_SingleTransaction(t *testing.T) {
	repo, mock, db := newTestCaseRepo(t)
	defer db.Close()

	c := &models.Case{
		CaseID:  "case-a",
		Domain:  "test-domain",
		Type:    "patient",
		OwnerID: "owner-x",
		Indices: []models.CaseIndex{
			{Identifier: "parent", ReferencedType: "patient", ReferencedID: "case-b", Relationship: models.RelationshipChild},
		},
	}
	flags := []FlagUpdate{{Domain: "test-domain", OwnerID: "owner-x", HintCaseID: "case-b"}}

	// The change stream advances first; its sequence is stamped on every
	// case row in the same transaction.
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO change_stream").
		WithArgs("test-domain").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(42))
	mock.ExpectExec("INSERT INTO cases").
		WithArgs("test-domain", "case-a", "patient", "", "owner-x", "", "",
			sqlmock.AnyArg(), false, false, sqlmock.AnyArg(), int64(42), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM case_indices").
		WithArgs("test-domain", "case-a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO case_indices").
		WithArgs("test-domain", "case-a", "parent", "patient", "case-b", "child").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO cleanliness_flags").
		WithArgs("test-domain", "owner-x", "case-b", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	seq, err := repo.CommitCases(context.Background(), "test-domain", []*models.Case{c}, flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seq != 42 {
		t.Errorf("expected checkpoint 42, got %d", seq)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCommitCases_RollsBackOnFailure(t *testing.T) {
	repo, mock, db := newTestCaseRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO change_stream").
		WithArgs("test-domain").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(1))
	mock.ExpectExec("INSERT INTO cases").
		WillReturnError(errors.New("db network error"))
	mock.ExpectRollback()

	_, err := repo.CommitCases(context.Background(), "test-domain",
		[]*models.Case{{CaseID: "case-a", Domain: "test-domain"}}, nil)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCheckpoint(t *testing.T) {
	repo, mock, db := newTestCaseRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("test-domain").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(7))

	seq, err := repo.Checkpoint(context.Background(), "test-domain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seq != 7 {
		t.Errorf("expected checkpoint 7, got %d", seq)
	}
}
