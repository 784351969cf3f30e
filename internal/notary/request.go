package notary

// Request is everything one submission needs. It lives for a single run.
type Request struct {
	ProductPath string
	ArchivePath string
	AppleID     string
	TeamID      string
	Password    string
	Verbose     bool
}

const (
	dittoTool = "ditto"
	xcrunTool = "xcrun"

	// DefaultArchivePath is overwritten on every run.
	DefaultArchivePath = "/tmp/archive.zip"
)

// ArchiveArgs builds the ditto invocation: create (-c) a PKZip (-k) archive
// that embeds the bundle's own directory name (--keepParent).
func ArchiveArgs(productPath, archivePath string) []string {
	return []string{
		"-c",
		"-k",
		"--keepParent",
		productPath,
		archivePath,
	}
}

// SubmitArgs builds the xcrun invocation for req. The team and verbose flags
// are appended only when configured, in that order.
func SubmitArgs(req Request) []string {
	args := []string{
		"notarytool",
		"submit",
		req.ArchivePath,
		"--wait",
		"--apple-id", req.AppleID,
		"--password", req.Password,
	}
	if req.TeamID != "" {
		args = append(args, "--team-id", req.TeamID)
	}
	if req.Verbose {
		args = append(args, "--verbose")
	}
	return args
}
