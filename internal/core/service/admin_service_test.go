package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/imagehub/imagehub-web/internal/core/domain"
	"github.com/imagehub/imagehub-web/internal/core/ports"
)

var adminSession = domain.Session{Token: "T", Email: "root@b.co", Name: "Root", Role: domain.RoleAdmin}

func validUserForm() ports.UserForm {
	return ports.UserForm{
		FirstName:   "Eva",
		LastName:    "Ruiz",
		Email:       "eva@example.com",
		Password:    "secret1",
		PhoneNumber: "3001234567",
		Direction:   "Cra 7",
		Role:        "operator",
		Active:      true,
	}
}

func TestAdminService_Create(t *testing.T) {
	api := &stubUserAPI{}
	svc := NewAdminService(api, zerolog.Nop())

	if err := svc.Create(context.Background(), adminSession, validUserForm()); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if api.created == nil || api.created.Role != domain.RoleOperator || api.created.Password != "secret1" {
		t.Fatalf("unexpected create payload %+v", api.created)
	}
	if api.created.Active == nil || !*api.created.Active {
		t.Fatalf("active flag must be sent")
	}
}

func TestAdminService_Create_RequiresPassword(t *testing.T) {
	api := &stubUserAPI{}
	svc := NewAdminService(api, zerolog.Nop())
	form := validUserForm()
	form.Password = ""

	err := svc.Create(context.Background(), adminSession, form)
	if got := domain.MessageOf(err, ""); got != MsgRequiredFields {
		t.Fatalf("expected required message, got %q", got)
	}
	if api.calls != 0 {
		t.Fatalf("rejected form must not reach the API")
	}
}

func TestAdminService_Create_RejectsUnknownRole(t *testing.T) {
	svc := NewAdminService(&stubUserAPI{}, zerolog.Nop())
	form := validUserForm()
	form.Role = "SUPERUSER"

	if got := domain.MessageOf(svc.Create(context.Background(), adminSession, form), ""); got != MsgInvalidRole {
		t.Fatalf("expected role message, got %q", got)
	}
}

func TestAdminService_Update_OmitsBlankPasswordAndEmail(t *testing.T) {
	api := &stubUserAPI{}
	svc := NewAdminService(api, zerolog.Nop())
	form := validUserForm()
	form.Password = ""
	form.Email = "changed@example.com"

	if err := svc.Update(context.Background(), adminSession, "9", form); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if api.patched.Password != nil {
		t.Fatalf("blank password must be omitted")
	}
	if *api.patched.FirstName != "Eva" || *api.patched.Role != domain.RoleOperator {
		t.Fatalf("unexpected patch %+v", api.patched)
	}
}

func TestAdminService_Update_SendsNewPassword(t *testing.T) {
	api := &stubUserAPI{}
	svc := NewAdminService(api, zerolog.Nop())
	form := validUserForm()
	form.Password = "newpass"

	if err := svc.Update(context.Background(), adminSession, "9", form); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if api.patched.Password == nil || *api.patched.Password != "newpass" {
		t.Fatalf("new password must be sent")
	}
}

func TestAdminService_SetActiveAndDelete(t *testing.T) {
	api := &stubUserAPI{}
	svc := NewAdminService(api, zerolog.Nop())
	ctx := context.Background()

	if err := svc.SetActive(ctx, adminSession, "4", false); err != nil {
		t.Fatalf("SetActive returned error: %v", err)
	}
	if err := svc.Delete(ctx, adminSession, "4"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if active, ok := api.activeSet["4"]; !ok || active {
		t.Fatalf("expected deactivate call, got %v", api.activeSet)
	}
	if len(api.deleted) != 1 || api.deleted[0] != "4" {
		t.Fatalf("unexpected deletes %v", api.deleted)
	}
}
