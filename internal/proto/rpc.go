package proto

// Per-content-surface RPC payloads. The JSON names are the ones the tabview
// pages send, so they stay camelCase like the shell channel.

type RegisterTabRequest struct {
	TabID         string `json:"tabId"`
	SurfaceHandle string `json:"surfaceHandle"`
}

type UnregisterTabRequest struct {
	TabID string `json:"tabId"`
}

type PingRequest struct {
	Message string `json:"message"`
}

type PingResponse struct {
	Pong string `json:"pong"`
}

type SystemInfo struct {
	Platform       string `json:"platform"`
	Arch           string `json:"arch"`
	RuntimeVersion string `json:"runtimeVersion"`
	Cwd            string `json:"cwd"`
	Pid            int    `json:"pid"`
}

type FileDialogResponse struct {
	Files []string `json:"files"`
}

type OpenExternalRequest struct {
	URL string `json:"url"`
}
