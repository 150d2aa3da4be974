package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"evtask/internal/commands"
	"evtask/internal/config"
	"evtask/internal/exitcode"
	"evtask/internal/service"
	"evtask/internal/testutil"
)

const testPage = `<!DOCTYPE html>
<html><head><title>Spring Fair</title></head><body>
<button id="publish-5">Publish</button>
<table><tbody>
<tr id="task-3" class="incomplete"><td class="taskData taskTitle" name="title">Tables</td><td class="taskData taskDescription" name="description">Rent 10 tables</td></tr>
<tr id="task-7" class="incomplete"><td class="taskData taskTitle" name="title">Chairs</td><td class="taskData taskDescription" name="description">Set up 40 chairs</td></tr>
</tbody></table>
<div id="myModal" class="modal show" style="display: block;">
<form id="updateTask">
<input type="hidden" id="event-id" name="formEvent" value="">
<input type="hidden" id="task-id" name="formId" value="">
<input type="text" id="task-title" name="formTitle" value="">
<input type="text" id="task-description" name="formDescription" value="">
</form>
</div>
</body></html>
`

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc service.Service, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()
	return runCommandWithConfig(t, cmd, svc, args, &config.Config{Dir: t.TempDir(), Quiet: quiet})
}

func runCommandWithConfig(t *testing.T, cmd commands.Command, svc service.Service, args []string, cfg *config.Config) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(context.Background(), cfg, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// pageConfig writes testPage to a temp file and returns a config pointing at it.
func pageConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "detail.html")
	if err := os.WriteFile(path, []byte(testPage), 0644); err != nil {
		t.Fatalf("failed to write page: %v", err)
	}
	return &config.Config{Dir: dir, PagePath: path}
}

func readPage(t *testing.T, cfg *config.Config) string {
	t.Helper()
	data, err := os.ReadFile(cfg.PagePath)
	if err != nil {
		t.Fatalf("failed to read page: %v", err)
	}
	return string(data)
}

func newService() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddTask("3", "Tables", "Rent 10 tables")
	svc.AddTask("7", "Chairs", "Set up 40 chairs")
	svc.AddEvent("5", false)
	return svc
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "evtask 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "evtask toggle <task-id>", "evtask register", "alias: delete", "--page <file>"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

// Tests for toggle command
func TestToggleCommand_Terminal(t *testing.T) {
	svc := newService()

	stdout, stderr, code := runCommand(t, &commands.ToggleCmd{}, svc, []string{"7"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "task 7: complete\n" {
		t.Errorf("expected completion line, got %q", stdout)
	}
}

func TestToggleCommand_Quiet(t *testing.T) {
	svc := newService()

	stdout, _, code := runCommand(t, &commands.ToggleCmd{}, svc, []string{"task-7"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
	if _, complete, _ := svc.Task("7"); !complete {
		t.Error("expected task 7 to be complete")
	}
}

func TestToggleCommand_Page(t *testing.T) {
	svc := newService()
	cfg := pageConfig(t)

	stdout, stderr, code := runCommandWithConfig(t, &commands.ToggleCmd{}, svc, []string{"#task-7"}, cfg)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	page := readPage(t, cfg)
	if !strings.Contains(page, `<tr id="task-7" class="complete">`) {
		t.Errorf("expected task-7 to be complete in saved page:\n%s", page)
	}
	if !strings.Contains(page, `<tr id="task-3" class="incomplete">`) {
		t.Errorf("expected task-3 untouched in saved page:\n%s", page)
	}
}

func TestToggleCommand_NoID(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ToggleCmd{}, newService(), nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: task id required\n" {
		t.Errorf("expected task id required error, got %q", stderr)
	}
}

func TestToggleCommand_BackendError(t *testing.T) {
	svc := newService()
	svc.ToggleCompleteErr = errors.New("backend error: /events/togglecomplete returned 500")
	cfg := pageConfig(t)

	stdout, stderr, code := runCommandWithConfig(t, &commands.ToggleCmd{}, svc, []string{"7"}, cfg)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: backend error: /events/togglecomplete returned 500\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if !strings.Contains(readPage(t, cfg), `<tr id="task-7" class="incomplete">`) {
		t.Error("expected page to keep its prior state")
	}
}

func TestToggleCommand_Unauthorized(t *testing.T) {
	svc := newService()
	svc.ToggleCompleteErr = service.ErrUnauthorized

	_, _, code := runCommand(t, &commands.ToggleCmd{}, svc, []string{"7"}, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
}

// Tests for rm command
func TestRmCommand_Success(t *testing.T) {
	svc := newService()
	cfg := pageConfig(t)

	stdout, stderr, code := runCommandWithConfig(t, &commands.RmCmd{}, svc, []string{"3"}, cfg)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if !strings.Contains(readPage(t, cfg), `<tr id="task-3" class="incomplete" style="display: none;">`) {
		t.Error("expected task-3 to be hidden")
	}
}

func TestRmCommand_NotDeleted(t *testing.T) {
	svc := newService()

	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"42"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "task 42: not deleted\n" {
		t.Errorf("expected not deleted line, got %q", stdout)
	}
}

func TestRmCommand_TooManyArgs(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.RmCmd{}, newService(), []string{"3", "7"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unexpected argument: 7\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for edit command
func TestEditCommand_Flags(t *testing.T) {
	svc := newService()
	cmd := &commands.EditCmd{}
	cmd.SetForm("7", "  Stools ", " Set up 12 stools ")

	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "task 7: Stools\n    Set up 12 stools\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	edits := svc.Edits()
	if len(edits) != 1 || edits[0] != (service.TaskRef{ID: "7", Title: "Stools", Description: "Set up 12 stools"}) {
		t.Errorf("expected one trimmed edit, got %+v", edits)
	}
}

func TestEditCommand_EmptyTitle(t *testing.T) {
	svc := newService()
	cmd := &commands.EditCmd{}
	cmd.SetForm("7", "   ", "Set up 12 stools")

	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "All fields must have a valid value.\n" {
		t.Errorf("expected validation notice, got %q", stdout)
	}
	if stderr != "error: validation failed: All fields must have a valid value.\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if svc.Calls("EditTask") != 0 {
		t.Error("expected no request for an invalid form")
	}
}

func TestEditCommand_PageForm(t *testing.T) {
	svc := newService()
	cfg := pageConfig(t)

	// Fill the form first, then edit the filled values in the saved page.
	fill := &commands.FillCmd{}
	fill.SetEventID("5")
	if _, stderr, code := runCommandWithConfig(t, fill, nil, []string{"7"}, cfg); code != exitcode.Success {
		t.Fatalf("fill failed: %q", stderr)
	}
	page := strings.Replace(readPage(t, cfg), `name="formTitle" value="Chairs"`, `name="formTitle" value="Benches"`, 1)
	if err := os.WriteFile(cfg.PagePath, []byte(page), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, code := runCommandWithConfig(t, &commands.EditCmd{}, svc, nil, cfg)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	page = readPage(t, cfg)
	if !strings.Contains(page, `name="title">Benches</td>`) {
		t.Errorf("expected row title patched:\n%s", page)
	}
	if !strings.Contains(page, `name="formTitle" value=""`) {
		t.Errorf("expected form reset:\n%s", page)
	}
	if !strings.Contains(page, `id="myModal" class="modal" style="display: none;" aria-hidden="true"`) {
		t.Errorf("expected modal hidden:\n%s", page)
	}
}

func TestEditCommand_NoInput(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.EditCmd{}, newService(), nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: --id, --title and --description required") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for fill command
func TestFillCommand(t *testing.T) {
	cfg := pageConfig(t)
	cmd := &commands.FillCmd{}
	cmd.SetEventID("5")

	stdout, stderr, code := runCommandWithConfig(t, cmd, nil, []string{"7"}, cfg)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	page := readPage(t, cfg)
	for _, want := range []string{
		`id="event-id" name="formEvent" value="5"`,
		`id="task-id" name="formId" value="7"`,
		`id="task-title" name="formTitle" value="Chairs"`,
		`id="task-description" name="formDescription" value="Set up 40 chairs"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("expected %s in saved page", want)
		}
	}
}

func TestFillCommand_NeedsPage(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.FillCmd{}, nil, []string{"7"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: fill needs --page\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestFillCommand_UnknownTask(t *testing.T) {
	cfg := pageConfig(t)

	_, stderr, code := runCommandWithConfig(t, &commands.FillCmd{}, nil, []string{"42"}, cfg)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: validation failed: task not found on page: 42\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for publish command
func TestPublishCommand(t *testing.T) {
	svc := newService()
	cfg := pageConfig(t)

	if _, stderr, code := runCommandWithConfig(t, &commands.PublishCmd{}, svc, []string{"publish-5"}, cfg); code != exitcode.Success {
		t.Fatalf("publish failed: %q", stderr)
	}
	if !strings.Contains(readPage(t, cfg), `<button id="publish-5">Unpublish</button>`) {
		t.Error("expected Unpublish label")
	}

	if _, stderr, code := runCommandWithConfig(t, &commands.PublishCmd{}, svc, []string{"5"}, cfg); code != exitcode.Success {
		t.Fatalf("publish failed: %q", stderr)
	}
	if !strings.Contains(readPage(t, cfg), `<button id="publish-5">Publish</button>`) {
		t.Error("expected Publish label")
	}
}

// Tests for register command
func TestRegisterCommand(t *testing.T) {
	svc := newService()
	cmd := &commands.RegisterCmd{}
	cmd.SetUserID("12")

	stdout, _, code := runCommand(t, cmd, svc, []string{"5"}, false)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "You have been registered! Check our 'Registered Events page'\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}

	stdout, _, _ = runCommand(t, cmd, svc, []string{"5"}, false)
	if stdout != "You are already registered.\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestRegisterCommand_PageNotices(t *testing.T) {
	svc := newService()
	cfg := pageConfig(t)
	cfg.UserID = "12"

	stdout, _, code := runCommandWithConfig(t, &commands.RegisterCmd{}, svc, []string{"5"}, cfg)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "You have been registered! Check our 'Registered Events page'\nok\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestRegisterCommand_NoUser(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.RegisterCmd{}, newService(), []string{"5"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: user id required") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestPageCommand_MissingFile(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir(), PagePath: filepath.Join(t.TempDir(), "missing.html")}

	_, stderr, code := runCommandWithConfig(t, &commands.ToggleCmd{}, newService(), []string{"7"}, cfg)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: failed to open page:") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
