package branch

import (
	"testing"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/auth"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database/dbtest"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"
)

var admin = auth.Caller{UserID: 1, Username: "root", Role: models.RoleAdmin}

func strPtr(s string) *string { return &s }

func TestCreateValidation(t *testing.T) {
	db := dbtest.Open(t)

	_, err := Create(db, admin, CreateInput{Name: "B1", Address: "a", City: "c", Phone: "p"})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("missing email: %v", err)
	}

	missing := uint(42)
	_, err = Create(db, admin, CreateInput{Name: "B1", Address: "a", City: "c", Phone: "p", Email: "e", ManagerID: &missing})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("unknown manager: %v", err)
	}

	mgr := auth.Caller{UserID: 2, Role: models.RoleBranchManager}
	_, err = Create(db, mgr, CreateInput{Name: "B1", Address: "a", City: "c", Phone: "p", Email: "e"})
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("manager create: %v", err)
	}

	b, err := Create(db, admin, CreateInput{Name: " B1 ", Address: "a", City: "c", Phone: "p", Email: "e"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.Name != "B1" || b.Status != models.BranchActive {
		t.Errorf("created %+v", b)
	}
}

func TestUpdatePartial(t *testing.T) {
	db := dbtest.Open(t)
	b := dbtest.Branch(t, db, "B1")
	u := dbtest.User(t, db, "bm1", models.RoleBranchManager, nil)

	inactive := models.BranchInactive
	got, err := Update(db, admin, b.ID, UpdateInput{City: strPtr("Shelbyville"), ManagerID: &u.ID, Status: &inactive})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.City != "Shelbyville" || got.Name != "B1" || got.Status != models.BranchInactive {
		t.Errorf("updated %+v", got)
	}
	if got.Manager == nil || got.Manager.ID != u.ID {
		t.Errorf("manager not resolved: %+v", got.Manager)
	}

	bad := models.BranchStatus("Closed")
	if _, err := Update(db, admin, b.ID, UpdateInput{Status: &bad}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("bad status: %v", err)
	}
	missing := uint(999)
	if _, err := Update(db, admin, b.ID, UpdateInput{ManagerID: &missing}); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("unknown manager: %v", err)
	}
	if _, err := Update(db, admin, 999, UpdateInput{}); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("unknown branch: %v", err)
	}
}

func TestAssignManagerWritesBothSides(t *testing.T) {
	db := dbtest.Open(t)
	b := dbtest.Branch(t, db, "B1")
	u := dbtest.User(t, db, "bm1", models.RoleBranchManager, nil)

	got, err := AssignManager(db, admin, b.ID, u.ID)
	if err != nil {
		t.Fatalf("AssignManager: %v", err)
	}
	if got.ManagerID == nil || *got.ManagerID != u.ID {
		t.Fatalf("branch manager = %v", got.ManagerID)
	}
	var reloaded models.User
	db.First(&reloaded, u.ID)
	if reloaded.BranchID == nil || *reloaded.BranchID != b.ID {
		t.Fatalf("user branch = %v", reloaded.BranchID)
	}

	var logs int64
	db.Model(&models.AuditLog{}).Where("action = ?", models.AuditActionAssign).Count(&logs)
	if logs != 1 {
		t.Errorf("assign audit rows = %d", logs)
	}
}

func TestAssignManagerUnknownUserLeavesBranchUntouched(t *testing.T) {
	db := dbtest.Open(t)
	b := dbtest.Branch(t, db, "B1")

	_, err := AssignManager(db, admin, b.ID, 77)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want NotFound", err)
	}
	var reloaded models.Branch
	db.First(&reloaded, b.ID)
	if reloaded.ManagerID != nil {
		t.Fatalf("branch manager changed to %v", *reloaded.ManagerID)
	}
}

func TestDeleteAndList(t *testing.T) {
	db := dbtest.Open(t)
	b1 := dbtest.Branch(t, db, "B1")
	dbtest.Branch(t, db, "B2")

	if err := Delete(db, admin, b1.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := Delete(db, admin, b1.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("second delete: %v", err)
	}
	list, err := List(db, auth.Caller{UserID: 5, Role: models.RoleBranchManager})
	if err != nil || len(list) != 1 || list[0].Name != "B2" {
		t.Fatalf("List = %+v, %v", list, err)
	}
	if _, err := List(db, auth.Caller{}); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("anonymous list: %v", err)
	}
}
