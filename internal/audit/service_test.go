package audit

import (
	"testing"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database/dbtest"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"
)

func TestWriteAndList(t *testing.T) {
	db := dbtest.Open(t)
	admin := auth.Caller{UserID: 1, Username: "root", Role: models.RoleAdmin}
	branch := uint(3)

	if err := WriteLog(db, LogOptions{
		Caller:     admin,
		BranchID:   &branch,
		EntityType: EntitySale,
		EntityID:   10,
		Action:     models.AuditActionCreate,
		After:      map[string]int{"quantity": 2},
	}); err != nil {
		t.Fatalf("WriteLog: %v", err)
	}
	Record(db, LogOptions{Caller: admin, EntityType: EntityBranch, EntityID: 3, Action: models.AuditActionUpdate})

	logs, err := List(db, admin, Filter{EntityType: EntitySale})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d logs, want 1", len(logs))
	}
	if logs[0].BeforeData != "null" || logs[0].AfterData != `{"quantity":2}` {
		t.Errorf("before/after = %q / %q", logs[0].BeforeData, logs[0].AfterData)
	}
	if logs[0].Username != "root" {
		t.Errorf("username = %q", logs[0].Username)
	}

	all, err := List(db, admin, Filter{})
	if err != nil || len(all) != 2 {
		t.Fatalf("List all = %d, %v", len(all), err)
	}

	manager := auth.Caller{UserID: 2, Role: models.RoleBranchManager, BranchID: &branch}
	if _, err := List(db, manager, Filter{}); apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("manager list: %v", err)
	}
}

func TestRegistrationIsAudited(t *testing.T) {
	db := dbtest.Open(t)
	root, err := auth.Register(db, auth.Caller{}, auth.RegisterInput{
		Username: "root", Email: "root@example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	rootCaller := auth.CallerFromUser(root)
	bm, err := auth.Register(db, rootCaller, auth.RegisterInput{
		Username: "bm", Email: "bm@example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	logs, err := List(db, rootCaller, Filter{EntityType: EntityUser})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("got %d user logs, want 2", len(logs))
	}
	byEntity := map[uint]models.AuditLog{}
	for _, l := range logs {
		byEntity[l.EntityID] = l
	}
	if l := byEntity[root.ID]; l.UserID != root.ID || l.Action != models.AuditActionCreate {
		t.Errorf("bootstrap log = %+v, want self-recorded create", l)
	}
	if l := byEntity[bm.ID]; l.UserID != root.ID || l.Username != "root" {
		t.Errorf("manager log actor = %d %q, want root", l.UserID, l.Username)
	}
}
