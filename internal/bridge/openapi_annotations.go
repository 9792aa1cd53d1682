// swaggo annotation stubs. The handlers themselves are the closures passed
// to handleGet/handlePost in server.go; regenerate internal/apidocs with
// go generate after changing a route.

package bridge

//go:generate swag init --generalInfo openapi_annotations.go --dir .,../proto,../uistate --output ../apidocs --outputTypes go --packageName apidocs

// statusOK is the generic {"status":"ok"} response body.
type statusOK struct {
	Status string `json:"status" example:"ok"`
}

// ── Tab surfaces ─────────────────────────────────────────────────────────────

// swagRegisterTab is a documentation stub for POST /api/tab/register.
//
//	@Summary	Register a content surface
//	@Description	Binds a tab id to the content surface hosting it. Handles no shell has mounted are ignored.
//	@Tags		tab
//	@Accept		json
//	@Produce	json
//	@Param		body	body		proto.RegisterTabRequest	true	"Registration"
//	@Success	200		{object}	statusOK
//	@Failure	400		{string}	string	"tabId and surfaceHandle are required"
//	@Router		/api/tab/register [post]
func swagRegisterTab() {}

// swagUnregisterTab is a documentation stub for POST /api/tab/unregister.
//
//	@Summary	Unregister a content surface
//	@Tags		tab
//	@Accept		json
//	@Produce	json
//	@Param		body	body		proto.UnregisterTabRequest	true	"Tab"
//	@Success	200		{object}	statusOK
//	@Router		/api/tab/unregister [post]
func swagUnregisterTab() {}

// swagPing is a documentation stub for POST /api/ping.
//
//	@Summary	Ping the Go process
//	@Description	Round trip between a content surface and the Go process.
//	@Tags		tab
//	@Accept		json
//	@Produce	json
//	@Param		body	body		proto.PingRequest	true	"Message"
//	@Success	200		{object}	proto.PingResponse
//	@Router		/api/ping [post]
func swagPing() {}

// swagSystemInfo is a documentation stub for GET /api/system-info.
//
//	@Summary	Runtime details
//	@Description	Platform, architecture, Go version, working directory and PID of the Go process.
//	@Tags		tab
//	@Produce	json
//	@Success	200	{object}	proto.SystemInfo
//	@Router		/api/system-info [get]
func swagSystemInfo() {}

// swagFileDialog is a documentation stub for POST /api/file-dialog.
//
//	@Summary	Pick files with the native dialog
//	@Description	Opens the native multi-select file dialog. A cancelled dialog returns an empty list.\nReturns 501 when the bridge runs headless.
//	@Tags		tab
//	@Produce	json
//	@Success	200	{object}	proto.FileDialogResponse
//	@Failure	501	{string}	string	"file dialog needs the desktop runtime"
//	@Router		/api/file-dialog [post]
func swagFileDialog() {}

// swagOpenExternal is a documentation stub for POST /api/open-external.
//
//	@Summary	Open a URL externally
//	@Description	Opens an http or https URL in the system browser.
//	@Tags		tab
//	@Accept		json
//	@Produce	json
//	@Param		body	body		proto.OpenExternalRequest	true	"URL to open"
//	@Success	200		{object}	statusOK
//	@Failure	400		{string}	string	"scheme must be http or https"
//	@Router		/api/open-external [post]
func swagOpenExternal() {}

// ── Shell ────────────────────────────────────────────────────────────────────

// swagState is a documentation stub for GET /api/state.
//
//	@Summary	Current tab state
//	@Description	The last state published by the tab authority.
//	@Tags		shell
//	@Produce	json
//	@Success	200	{object}	proto.TabState
//	@Failure	503	{string}	string	"nothing published yet"
//	@Router		/api/state [get]
func swagState() {}

// swagThemeGet is a documentation stub for GET /api/theme.
//
//	@Summary	Current UI theme
//	@Tags		shell
//	@Produce	json
//	@Success	200	{object}	uistate.State
//	@Router		/api/theme [get]
func swagThemeGet() {}

// swagThemeSet is a documentation stub for POST /api/theme.
//
//	@Summary	Set the UI theme
//	@Description	Stores the theme in ui.json. Connected shells follow the file change.
//	@Tags		shell
//	@Accept		json
//	@Produce	json
//	@Param		body	body		uistate.State	true	"Theme"
//	@Success	200		{object}	uistate.State
//	@Router		/api/theme [post]
func swagThemeSet() {}

// ── Logs ─────────────────────────────────────────────────────────────────────

// swagLogs is a documentation stub for GET /api/logs.
//
//	@Summary	Recent log lines
//	@Description	Returns the buffered log lines, oldest first.
//	@Tags		logs
//	@Produce	json
//	@Param		subsystem	query	string	false	"Only lines of this subsystem"	example(TABS)
//	@Success	200	{array}	LogEntry
//	@Router		/api/logs [get]
func swagLogs() {}

// swagLogStream is a documentation stub for GET /api/logs/stream.
//
//	@Summary	SSE stream of log lines
//	@Description	Server-Sent Events tail of new log lines. No snapshot is sent.
//	@Tags		logs
//	@Produce	text/event-stream
//	@Success	200	{string}	string	"SSE stream"
//	@Router		/api/logs/stream [get]
func swagLogStream() {}
