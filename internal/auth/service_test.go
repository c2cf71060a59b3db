package auth

import (
	"strings"
	"testing"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database/dbtest"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"
)

func TestRegisterBootstrapAndGuard(t *testing.T) {
	db := dbtest.Open(t)

	first, err := Register(db, Caller{}, RegisterInput{
		Username: "root", Email: "Root@Example.com", Password: "secret1", Role: models.RoleBranchManager,
	})
	if err != nil {
		t.Fatalf("bootstrap register: %v", err)
	}
	if first.Role != models.RoleAdmin {
		t.Errorf("first user role = %q, want Admin", first.Role)
	}
	if first.Email != "root@example.com" {
		t.Errorf("email not normalised: %q", first.Email)
	}

	_, err = Register(db, Caller{}, RegisterInput{Username: "x", Email: "x@example.com", Password: "secret1"})
	if apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("anonymous second register: %v", err)
	}

	rootCaller := CallerFromUser(first)
	mgr, err := Register(db, rootCaller, RegisterInput{Username: "bm", Email: "bm@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("admin register: %v", err)
	}
	if mgr.Role != models.RoleBranchManager {
		t.Errorf("default role = %q", mgr.Role)
	}

	_, err = Register(db, CallerFromUser(mgr), RegisterInput{Username: "y", Email: "y@example.com", Password: "secret1"})
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("manager register: %v", err)
	}

	_, err = Register(db, rootCaller, RegisterInput{Username: "bm", Email: "other@example.com", Password: "secret1"})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("duplicate username: %v", err)
	}

	_, err = Register(db, rootCaller, RegisterInput{Username: "z", Email: "z@example.com", Password: "secret1", Role: "Owner"})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("bad role: %v", err)
	}

	_, err = Register(db, rootCaller, RegisterInput{Username: "z", Email: "z@example.com", Password: "secret1", BranchID: uintPtr(99)})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("unknown branch: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	db := dbtest.Open(t)
	user, err := Register(db, Caller{}, RegisterInput{Username: "root", Email: "root@example.com", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Authenticate(db, "ROOT@example.com ", "secret1"); err != nil {
		t.Fatalf("valid login: %v", err)
	}
	if _, err := Authenticate(db, "root@example.com", "wrong"); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("wrong password: %v", err)
	}
	if _, err := Authenticate(db, "nobody@example.com", "secret1"); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("unknown email: %v", err)
	}
	if _, err := Authenticate(db, "", ""); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("empty credentials: %v", err)
	}

	if err := db.Model(user).Update("is_active", false).Error; err != nil {
		t.Fatal(err)
	}
	if _, err := Authenticate(db, "root@example.com", "secret1"); apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Fatalf("inactive user: %v", err)
	}
}

func TestListUsersRequiresAdmin(t *testing.T) {
	db := dbtest.Open(t)
	user, err := Register(db, Caller{}, RegisterInput{Username: "root", Email: "root@example.com", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ListUsers(db, manager); apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("manager list: %v", err)
	}
	users, err := ListUsers(db, CallerFromUser(user))
	if err != nil || len(users) != 1 {
		t.Fatalf("admin list = %d users, %v", len(users), err)
	}
}

func TestRegisterWritesAuditRowWithoutPassword(t *testing.T) {
	db := dbtest.Open(t)
	u, err := Register(db, Caller{}, RegisterInput{Username: "root", Email: "root@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	var row models.AuditLog
	if err := db.Where("entity_type = ? AND entity_id = ?", models.AuditEntityUser, u.ID).First(&row).Error; err != nil {
		t.Fatalf("audit row: %v", err)
	}
	if strings.Contains(row.AfterData, u.PasswordHash) {
		t.Error("audit row leaks the password hash")
	}
}
