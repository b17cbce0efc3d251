// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, guards portal screens, and routes input to child components

package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/steadystudy/studyportal/internal/access"
	"github.com/steadystudy/studyportal/internal/auth"
	"github.com/steadystudy/studyportal/internal/blob"
	"github.com/steadystudy/studyportal/internal/client"
	"github.com/steadystudy/studyportal/internal/roster"
	"github.com/steadystudy/studyportal/internal/session"
	"github.com/steadystudy/studyportal/internal/tui/confirm"
	"github.com/steadystudy/studyportal/internal/tui/dashboard"
	"github.com/steadystudy/studyportal/internal/tui/icons"
	"github.com/steadystudy/studyportal/internal/tui/login"
	"github.com/steadystudy/studyportal/internal/tui/menu"
	"github.com/steadystudy/studyportal/internal/tui/pdfview"
	"github.com/steadystudy/studyportal/internal/tui/resources"
	"github.com/steadystudy/studyportal/internal/tui/styles"
	"github.com/steadystudy/studyportal/internal/tui/widgets"
	"github.com/steadystudy/studyportal/internal/upload"
	"github.com/steadystudy/studyportal/internal/viewer"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenLogin
	ScreenResources
	ScreenDashboard
	ScreenBatch
	ScreenUpload
	ScreenViewer
	ScreenConfirm
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// Dialog identifiers
const (
	confirmLogout = "logout"
	confirmDelete = "delete"
)

const uploadBusyNotice = "An upload is already in progress."

// loginDoneMsg is sent when a login request settles
type loginDoneMsg struct {
	sess session.Session
	err  error
}

// logoutDoneMsg is sent when the logout request settles; the session is already cleared
type logoutDoneMsg struct {
	err error
}

// resourcesLoadedMsg carries a resource list; batchID is empty for the student portal
type resourcesLoadedMsg struct {
	batchID string
	items   []client.Resource
	err     error
}

// overviewLoadedMsg carries the admin roster
type overviewLoadedMsg struct {
	overview *roster.Overview
	err      error
}

// resourceOpenedMsg carries a blob reference ready for the viewer
type resourceOpenedMsg struct {
	seq   int
	ref   string
	title string
	err   error
}

// resourceDeletedMsg is sent when a delete request settles
type resourceDeletedMsg struct {
	id  string
	err error
}

// uploadStepMsg is sent after each file of an upload run
type uploadStepMsg struct {
	run int
	err error
}

// uploadRun tracks a sequential multi-file upload
type uploadRun struct {
	id     int
	batch  client.Batch
	paths  []string
	done   int
	failed bool
}

// Deps are the collaborators the TUI drives
type Deps struct {
	Client    *client.Client
	Gateway   *auth.Gateway
	Guard     *auth.Guard
	Blobs     *blob.Registry
	Watermark string
}

// App is the root model for the TUI
type App struct {
	deps       Deps
	screen     Screen
	returnTo   Screen
	width      int
	height     int
	notice     string
	isErr      bool
	lastUpdate time.Time

	gate     *access.Gate
	uploader *upload.Uploader
	viewer   *viewer.Viewer
	overview *roster.Overview
	batch    client.Batch
	pending  client.Resource
	run      *uploadRun
	runSeq   int

	// opening is set while a document fetch is in flight; openSeq
	// identifies it so late results from an abandoned fetch are dropped
	opening bool
	openSeq int

	// Child models
	menu       *menu.Menu
	login      *login.Login
	list       *resources.List
	dashboard  *dashboard.Dashboard
	uploadForm *dashboard.UploadForm
	pdf        *pdfview.View
	dialog     *confirm.Dialog
}

// New creates a new TUI application, starting at the portal home when a session exists
func New(deps Deps) *App {
	a := &App{
		deps:     deps,
		uploader: upload.NewUploader(deps.Client),
		viewer:   viewer.New(deps.Blobs, deps.Watermark),
	}

	var last session.Role
	if sess, ok := deps.Guard.Current(); ok {
		last = sess.Role
	}
	a.menu = menu.New(last)
	a.screen = ScreenMenu
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if _, ok := a.deps.Guard.Current(); ok {
		return a.goHome()
	}
	return a.menu.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dashboard != nil {
			a.dashboard.SetSize(a.contentWidth(), a.contentHeight())
		}
		if a.pdf != nil {
			a.pdf.SetSize(a.width, a.contentHeight())
		}
		if a.list != nil {
			a.list.Update(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.routeKey(msg)

	case tea.MouseMsg:
		if a.screen == ScreenViewer && a.pdf != nil {
			return a.updatePDF(msg)
		}
		return a, nil

	case menu.RoleSelectedMsg:
		return a, a.showLogin(msg.Role, "", false)

	case menu.CancelledMsg:
		return a, tea.Quit

	case login.SubmitMsg:
		return a, a.submitLogin(msg)

	case login.BackMsg:
		a.login = nil
		a.screen = ScreenMenu
		return a, a.menu.Init()

	case loginDoneMsg:
		return a.handleLoginDone(msg)

	case logoutDoneMsg:
		return a.handleLogoutDone(msg)

	case resourcesLoadedMsg:
		return a.handleResourcesLoaded(msg)

	case overviewLoadedMsg:
		return a.handleOverviewLoaded(msg)

	case resources.OpenMsg:
		return a.handleOpen(msg.Resource)

	case resourceOpenedMsg:
		return a.handleOpened(msg)

	case pdfview.CloseMsg:
		a.viewer.Close()
		a.pdf = nil
		a.screen = a.returnTo
		return a, nil

	case dashboard.BatchSelectedMsg:
		return a, a.openBatch(msg.Batch)

	case dashboard.UploadRequestedMsg:
		return a.startUpload(msg)

	case dashboard.UploadCancelledMsg:
		a.uploadForm = nil
		a.screen = ScreenBatch
		return a, nil

	case uploadStepMsg:
		return a.handleUploadStep(msg)

	case confirm.ResultMsg:
		return a.handleConfirm(msg)

	case resourceDeletedMsg:
		return a.handleDeleted(msg)

	default:
		// Forward internal messages to huh forms and spinners
		return a.forward(msg)
	}
}

func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenMenu:
		return a.updateMenu(msg)
	case ScreenLogin:
		return a.updateLogin(msg)
	case ScreenResources:
		return a.updateResources(msg)
	case ScreenDashboard:
		return a.updateDashboard(msg)
	case ScreenBatch:
		return a.updateBatch(msg)
	case ScreenUpload:
		return a.updateUploadForm(msg)
	case ScreenViewer:
		return a.updatePDF(msg)
	case ScreenConfirm:
		return a.updateDialog(msg)
	}
	return a, nil
}

func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenMenu:
		return a.updateMenu(msg)
	case ScreenLogin:
		return a.updateLogin(msg)
	case ScreenUpload:
		return a.updateUploadForm(msg)
	case ScreenConfirm:
		return a.updateDialog(msg)
	}
	return a, nil
}

func (a *App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.menu.Update(msg)
	a.menu = model.(*menu.Menu)
	return a, cmd
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.login == nil {
		return a, nil
	}
	model, cmd := a.login.Update(msg)
	a.login = model.(*login.Login)
	return a, cmd
}

func (a *App) updateUploadForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.uploadForm == nil {
		return a, nil
	}
	model, cmd := a.uploadForm.Update(msg)
	a.uploadForm = model.(*dashboard.UploadForm)
	return a, cmd
}

func (a *App) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.dialog == nil {
		return a, nil
	}
	model, cmd := a.dialog.Update(msg)
	a.dialog = model.(*confirm.Dialog)
	return a, cmd
}

func (a *App) updatePDF(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.pdf == nil {
		return a, nil
	}
	model, cmd := a.pdf.Update(msg)
	a.pdf = model.(*pdfview.View)
	return a, cmd
}

func (a *App) updateResources(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.list == nil {
		return a, nil
	}
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		a.clearNotice()
		a.list.SetLoading(true)
		return a, a.loadResources("")
	case "L":
		return a, a.askConfirm(confirmLogout, "Log out of Steady Study?", "Log out")
	}
	_, cmd := a.list.Update(msg)
	return a, cmd
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		a.clearNotice()
		return a, a.loadOverview()
	case "L":
		return a, a.askConfirm(confirmLogout, "Log out of Steady Study?", "Log out")
	}
	if a.dashboard == nil {
		return a, nil
	}
	_, cmd := a.dashboard.Update(msg)
	return a, cmd
}

func (a *App) updateBatch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.list == nil {
		return a, nil
	}
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "esc", "b":
		a.clearNotice()
		a.list = nil
		a.screen = ScreenDashboard
		return a, a.loadOverview()
	case "r":
		a.clearNotice()
		a.list.SetLoading(true)
		return a, a.loadResources(a.batch.ID)
	case "u":
		if a.run != nil {
			a.setNotice(uploadBusyNotice, true)
			return a, nil
		}
		a.clearNotice()
		a.uploadForm = dashboard.NewUploadForm(a.batch)
		a.screen = ScreenUpload
		return a, a.uploadForm.Init()
	case "d":
		r, ok := a.list.Selected()
		if !ok {
			return a, nil
		}
		a.pending = r
		return a, a.askConfirm(confirmDelete, fmt.Sprintf("Delete %q?", r.Title), "Delete")
	}
	_, cmd := a.list.Update(msg)
	return a, cmd
}

// goHome shows the portal screen for the current session, or the menu when none exists
func (a *App) goHome() tea.Cmd {
	sess, ok := a.deps.Guard.Current()
	if !ok {
		a.screen = ScreenMenu
		return a.menu.Init()
	}

	a.gate = access.NewGate(a.deps.Client, sess.Role, a.deps.Blobs)
	a.viewer.Close()
	a.viewer = viewer.New(a.deps.Blobs, viewer.Mark(a.deps.Watermark, sess.Email))
	switch sess.Role {
	case session.RoleAdmin:
		if a.dashboard == nil {
			a.dashboard = dashboard.New(nil, a.contentWidth(), a.contentHeight())
		}
		a.screen = ScreenDashboard
		return a.loadOverview()
	default:
		a.list = resources.New("My Resources", a.gate.Preview)
		a.screen = ScreenResources
		return a.loadResources("")
	}
}

// requireRole redirects to the login screen when the guard rejects the current session
func (a *App) requireRole(role session.Role) tea.Cmd {
	if _, err := a.deps.Guard.Require(role); err != nil {
		slog.Debug("Guard redirected to login", "role", role, "error", err)
		return a.showLogin(role, "Please login to continue.", true)
	}
	return nil
}

func (a *App) showLogin(role session.Role, notice string, isErr bool) tea.Cmd {
	a.login = login.New(role, a.deps.Gateway.RecentEmails(role))
	if notice != "" {
		a.login.SetNotice(notice, isErr)
	}
	a.clearNotice()
	a.screen = ScreenLogin
	return a.login.Init()
}

func (a *App) submitLogin(msg login.SubmitMsg) tea.Cmd {
	gw := a.deps.Gateway
	return func() tea.Msg {
		sess, err := gw.Login(context.Background(), msg.Credentials, msg.Role)
		return loginDoneMsg{sess: sess, err: err}
	}
}

func (a *App) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.login == nil {
			return a, nil
		}
		return a, a.login.Fail(loginFailureText(msg.err))
	}
	slog.Info("Signed in", "role", msg.sess.Role)
	a.login = nil
	a.dashboard = nil
	a.overview = nil
	a.menu = menu.New(msg.sess.Role)
	return a, a.goHome()
}

// loginFailureText picks the message shown on the login form
func loginFailureText(err error) string {
	var loginErr *auth.LoginError
	if errors.As(err, &loginErr) {
		return loginErr.Message
	}
	return err.Error()
}

func (a *App) handleLogoutDone(msg logoutDoneMsg) (tea.Model, tea.Cmd) {
	a.resetPortal()
	a.screen = ScreenMenu
	if msg.err != nil {
		a.setNotice("Logged out on this device. The server did not confirm the logout.", true)
	} else {
		a.setNotice("Logged out.", false)
	}
	return a, a.menu.Init()
}

// resetPortal drops every piece of per-session UI state
func (a *App) resetPortal() {
	a.viewer.Close()
	a.gate = nil
	a.list = nil
	a.dashboard = nil
	a.overview = nil
	a.pdf = nil
	a.uploadForm = nil
	a.dialog = nil
	a.run = nil
	a.batch = client.Batch{}
	a.opening = false
	a.openSeq++
}

// remoteFailure reports err, redirecting to login when the session has expired
func (a *App) remoteFailure(err error, role session.Role) tea.Cmd {
	checked := a.deps.Guard.Check(err)
	if errors.Is(checked, auth.ErrSessionExpired) {
		a.resetPortal()
		return a.showLogin(role, auth.SessionExpiredNotice, true)
	}
	a.setNotice(checked.Error(), true)
	return nil
}

func (a *App) loadResources(batchID string) tea.Cmd {
	gate := a.gate
	return func() tea.Msg {
		items, err := gate.ListResources(context.Background(), batchID)
		return resourcesLoadedMsg{batchID: batchID, items: items, err: err}
	}
}

func (a *App) handleResourcesLoaded(msg resourcesLoadedMsg) (tea.Model, tea.Cmd) {
	if a.list == nil {
		return a, nil
	}
	// Ignore lists for a batch that is no longer shown
	if msg.batchID != "" && msg.batchID != a.batch.ID {
		return a, nil
	}
	a.list.SetLoading(false)
	if msg.err != nil {
		return a, a.remoteFailure(msg.err, a.role())
	}
	a.list.SetItems(msg.items)
	a.lastUpdate = time.Now()
	return a, nil
}

func (a *App) loadOverview() tea.Cmd {
	if cmd := a.requireRole(session.RoleAdmin); cmd != nil {
		return cmd
	}
	c := a.deps.Client
	return func() tea.Msg {
		overview, err := roster.Load(context.Background(), c)
		return overviewLoadedMsg{overview: overview, err: err}
	}
}

func (a *App) handleOverviewLoaded(msg overviewLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return a, a.remoteFailure(msg.err, session.RoleAdmin)
	}
	a.overview = msg.overview
	a.lastUpdate = time.Now()
	if a.dashboard == nil {
		a.dashboard = dashboard.New(msg.overview, a.contentWidth(), a.contentHeight())
	} else {
		a.dashboard.SetOverview(msg.overview)
	}
	return a, nil
}

func (a *App) openBatch(b client.Batch) tea.Cmd {
	if cmd := a.requireRole(session.RoleAdmin); cmd != nil {
		return cmd
	}
	a.clearNotice()
	a.batch = b
	a.list = resources.New(b.Title, a.gate.Preview)
	a.screen = ScreenBatch
	return a.loadResources(b.ID)
}

func (a *App) handleOpen(r client.Resource) (tea.Model, tea.Cmd) {
	if a.opening || a.gate == nil {
		return a, nil
	}
	a.clearNotice()
	switch a.gate.Preview(r) {
	case access.PreviewNoLink:
		a.setNotice("No file is attached to this resource.", true)
		return a, nil
	case access.PreviewUnsupported:
		a.setNotice("Preview not available for this file type.", true)
		return a, nil
	}

	a.opening = true
	a.openSeq++
	seq := a.openSeq
	gate := a.gate
	return a, func() tea.Msg {
		ref, err := gate.OpenResource(context.Background(), r)
		return resourceOpenedMsg{seq: seq, ref: ref, title: r.Title, err: err}
	}
}

func (a *App) handleOpened(msg resourceOpenedMsg) (tea.Model, tea.Cmd) {
	if !a.opening || msg.seq != a.openSeq {
		a.discardOpened(msg)
		return a, nil
	}
	a.opening = false
	if _, err := a.deps.Guard.Require(session.RoleStudent); err != nil || a.screen != ScreenResources {
		a.discardOpened(msg)
		return a, nil
	}
	if msg.err != nil {
		return a, a.remoteFailure(msg.err, a.role())
	}
	if err := a.viewer.Open(msg.ref, msg.title); err != nil {
		slog.Warn("Failed to open document", "title", msg.title, "error", err)
		a.setNotice("Unable to display this document.", true)
		return a, nil
	}
	a.returnTo = ScreenResources
	a.pdf = pdfview.New(a.viewer, a.width, a.contentHeight())
	a.screen = ScreenViewer
	return a, nil
}

// discardOpened releases a fetched document nobody will show
func (a *App) discardOpened(msg resourceOpenedMsg) {
	if msg.ref != "" {
		a.deps.Blobs.Revoke(msg.ref)
	}
	slog.Debug("Dropped stale document", "title", msg.title, "seq", msg.seq)
}

func (a *App) askConfirm(id, question, affirmative string) tea.Cmd {
	a.returnTo = a.screen
	a.dialog = confirm.New(id, question, affirmative)
	a.screen = ScreenConfirm
	return a.dialog.Init()
}

func (a *App) handleConfirm(msg confirm.ResultMsg) (tea.Model, tea.Cmd) {
	a.dialog = nil
	a.screen = a.returnTo
	if !msg.Confirmed {
		return a, nil
	}

	switch msg.ID {
	case confirmLogout:
		gw := a.deps.Gateway
		return a, func() tea.Msg {
			return logoutDoneMsg{err: gw.Logout(context.Background())}
		}
	case confirmDelete:
		r := a.pending
		a.pending = client.Resource{}
		if a.list == nil || r.ID == "" {
			return a, nil
		}
		a.list.SetItems(roster.RemoveResource(a.list.Items(), r.ID))
		gate := a.gate
		return a, func() tea.Msg {
			return resourceDeletedMsg{id: r.ID, err: gate.DeleteResource(context.Background(), r.ID)}
		}
	}
	return a, nil
}

func (a *App) handleDeleted(msg resourceDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		cmd := a.remoteFailure(msg.err, session.RoleAdmin)
		if a.screen == ScreenBatch && a.list != nil {
			a.list.SetLoading(true)
			return a, tea.Batch(cmd, a.loadResources(a.batch.ID))
		}
		return a, cmd
	}
	a.setNotice("Resource deleted.", false)
	return a, nil
}

func (a *App) startUpload(msg dashboard.UploadRequestedMsg) (tea.Model, tea.Cmd) {
	a.uploadForm = nil
	a.screen = ScreenBatch
	if a.run != nil {
		a.setNotice(uploadBusyNotice, true)
		return a, nil
	}
	// The form validates on submit; check again in case files changed since
	if err := upload.Validate(msg.Paths); err != nil {
		a.setNotice(err.Error(), true)
		return a, nil
	}
	a.runSeq++
	a.run = &uploadRun{id: a.runSeq, batch: msg.Batch, paths: msg.Paths}
	return a, a.uploadNext()
}

func (a *App) uploadNext() tea.Cmd {
	run := a.run
	path := run.paths[run.done]
	u := a.uploader
	return func() tea.Msg {
		return uploadStepMsg{run: run.id, err: u.UploadFile(context.Background(), run.batch.ID, path)}
	}
}

func (a *App) handleUploadStep(msg uploadStepMsg) (tea.Model, tea.Cmd) {
	run := a.run
	if run == nil || msg.run != run.id {
		return a, nil
	}
	if msg.err != nil {
		run.failed = true
		a.run = nil
		slog.Warn("Upload stopped", "file", run.paths[run.done], "error", msg.err)
		wrapped := fmt.Errorf("upload of %s failed after %d of %d files: %w",
			upload.Title(run.paths[run.done]), run.done, len(run.paths), msg.err)
		cmd := a.remoteFailure(wrapped, session.RoleAdmin)
		if a.screen == ScreenBatch {
			return a, tea.Batch(cmd, a.loadResources(run.batch.ID))
		}
		return a, cmd
	}

	run.done++
	if run.done < len(run.paths) {
		return a, a.uploadNext()
	}
	a.run = nil
	a.setNotice(fmt.Sprintf("Uploaded %d file(s) to %s.", len(run.paths), run.batch.Title), false)
	if a.screen == ScreenBatch && a.batch.ID == run.batch.ID {
		return a, a.loadResources(run.batch.ID)
	}
	return a, nil
}

func (a *App) role() session.Role {
	if sess, ok := a.deps.Guard.Current(); ok {
		return sess.Role
	}
	if a.login != nil {
		return a.login.Role()
	}
	return session.RoleStudent
}

func (a *App) setNotice(msg string, isErr bool) {
	a.notice = msg
	a.isErr = isErr
}

func (a *App) clearNotice() {
	a.notice = ""
	a.isErr = false
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		content = a.viewLogin()
	case ScreenResources:
		content = a.viewResources()
	case ScreenDashboard:
		content = a.viewDashboard()
	case ScreenBatch:
		content = a.viewBatch()
	case ScreenUpload:
		content = a.viewUpload()
	case ScreenViewer:
		content = a.viewPDF()
	case ScreenConfirm:
		content = a.viewConfirm()
	default:
		content = a.viewMenu()
	}

	if a.notice != "" {
		content = styles.Notice(a.notice, a.isErr) + "\n" + content
	}
	return a.wrapWithFrame(content)
}

func (a *App) viewMenu() string {
	title := styles.Title.Render("Welcome to Steady Study")
	return styles.ActivePanel.Width(a.contentWidth()).Render(title + "\n" + a.menu.View())
}

func (a *App) viewLogin() string {
	if a.login == nil {
		return ""
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(a.login.View())
}

func (a *App) viewResources() string {
	if a.list == nil {
		return styles.Panel.Width(a.contentWidth()).Render("Loading...")
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(a.list.View())
}

// viewDashboard renders the dashboard with actions pane
func (a *App) viewDashboard() string {
	leftPane := ""
	if a.dashboard != nil {
		leftPane = styles.ActivePanel.Width(a.dashboardWidth()).Render(a.dashboard.View())
	} else {
		leftPane = styles.Panel.Width(a.dashboardWidth()).Render("Loading...")
	}

	rightContent := styles.Title.Render(icons.Settings.String()+" Actions") + "\n\n"
	rightContent += icons.Batch.String() + " Open batch resources\n"
	rightContent += icons.Refresh.String() + " Refresh data\n"
	rightContent += icons.Logout.String() + " Log out\n"
	rightContent += icons.Quit.String() + " Quit application\n"
	rightPane := styles.Panel.Width(a.actionsWidth()).Render(rightContent)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

func (a *App) viewBatch() string {
	leftPane := ""
	if a.list != nil {
		leftPane = styles.ActivePanel.Width(a.dashboardWidth()).Render(a.list.View())
	}

	rightContent := styles.Title.Render(icons.Batch.String()+" "+a.batch.Title) + "\n"
	if a.overview != nil {
		rightContent += fmt.Sprintf("%d student(s) enrolled\n\n", a.overview.StudentCount(a.batch.ID))
	}
	if a.run != nil {
		rightContent += "Uploading " + upload.Title(a.run.paths[a.run.done]) + "\n"
		rightContent += widgets.ProgressBarWithLabel(a.run.done, len(a.run.paths), a.run.failed, widgets.DefaultProgressBarConfig()) + "\n\n"
	}
	rightContent += icons.Upload.String() + " Upload PDFs\n"
	rightContent += icons.Delete.String() + " Delete resource\n"
	rightContent += icons.Back.String() + " Back to dashboard\n"
	rightPane := styles.Panel.Width(a.actionsWidth()).Render(rightContent)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

func (a *App) viewUpload() string {
	if a.uploadForm == nil {
		return ""
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(a.uploadForm.View())
}

func (a *App) viewPDF() string {
	if a.pdf == nil {
		return ""
	}
	return a.pdf.View()
}

func (a *App) viewConfirm() string {
	if a.dialog == nil {
		return ""
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(a.dialog.View())
}

// contentWidth is the width available inside a single full-width panel
func (a *App) contentWidth() int {
	return max(a.width, minTerminalWidth) - panelPadding
}

// dashboardWidth calculates the width for the dashboard pane
func (a *App) dashboardWidth() int {
	if a.width < minTerminalWidth {
		return a.contentWidth()
	}
	return (a.width - panelPadding) * 3 / 5
}

// actionsWidth calculates the width for the actions pane
func (a *App) actionsWidth() int {
	return max(a.width, minTerminalWidth) - a.dashboardWidth() - 4
}

// contentHeight calculates the height available for screen content
func (a *App) contentHeight() int {
	// Header, footer, and the newlines around content take 4 lines; panel chrome takes 4 more
	return max(a.height-8, 1)
}

// renderHeader creates the header bar with app branding and the signed-in account
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := max(a.width, minTerminalWidth)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Steady Study"))

	rightText := ""
	if sess, ok := a.deps.Guard.Current(); ok && a.screen != ScreenMenu && a.screen != ScreenLogin {
		who := sess.Email
		if sess.DisplayName != "" {
			who = sess.DisplayName
		}
		rightText = widgets.RoleBadge(sess.Role) + " " + contextStyle.Render(who) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := max(width-4-leftWidth-rightWidth, 0) // -4 for ╭─ and ─╮

	return borderStyle.Render("╭─") + leftText + borderStyle.Render(strings.Repeat("─", fillWidth)) + rightText + borderStyle.Render("─╮")
}

// shortcuts lists the keyboard help for the current screen
func (a *App) shortcuts() []string {
	switch a.screen {
	case ScreenMenu:
		return []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenLogin:
		return []string{"Tab Next", "Enter Submit", "Esc Back"}
	case ScreenResources:
		return []string{"↑↓ Navigate", "Enter Open", "r Refresh", "L Logout", "q Quit"}
	case ScreenDashboard:
		return []string{"↑↓ Navigate", "Enter Batch", "r Refresh", "L Logout", "q Quit"}
	case ScreenBatch:
		return []string{"Enter Open", "u Upload", "d Delete", "b Back", "q Quit"}
	case ScreenUpload:
		return []string{"Enter Upload", "Esc Cancel"}
	case ScreenViewer:
		return []string{"←→ Page", "+/- Zoom", "r Rotate", "Esc Close"}
	case ScreenConfirm:
		return []string{"←→ Choose", "Enter Confirm", "Esc Cancel"}
	}
	return nil
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := max(a.width, minTerminalWidth)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	shortcuts := a.shortcuts()
	var styledShortcuts []string
	for _, s := range shortcuts {
		if key, label, ok := strings.Cut(s, " "); ok {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(key)+" "+labelStyle.Render(label))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	switch {
	case a.screen == ScreenViewer && a.pdf != nil:
		// The page status heads the viewer itself
		rightPlainText = a.viewer.Watermark() + " "
		rightText = statusStyle.Render(a.viewer.Watermark()) + " "
	case !a.lastUpdate.IsZero() && (a.screen == ScreenResources || a.screen == ScreenDashboard || a.screen == ScreenBatch):
		elapsed := a.formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := max(width-4-leftWidth-rightWidth, 0) // -4 for ╰─ and ─╯

	return borderStyle.Render("╰─") + leftText + borderStyle.Render(strings.Repeat("─", fillWidth)) + rightText + borderStyle.Render("─╯")
}

// formatTimeSince formats a duration since the given time in human-readable form
func (a *App) formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh ago", int(d.Hours()))
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(deps Deps) error {
	app := New(deps)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()

	// Release any document still held by the viewer
	app.viewer.Close()
	return err
}
