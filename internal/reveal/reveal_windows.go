package reveal

import "os/exec"

// Open shells out to explorer to show path in the Windows file
// browser, mirroring the original orchestrator's post-run convenience.
func Open(path string) error {
	return exec.Command("explorer", path).Start()
}
