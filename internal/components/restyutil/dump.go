package restyutil

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// Output receives every exchange made by a dumped client.
type Output interface {
	Write(id string, contents string) error
}

type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput writes exchanges as files in `dir`, creating it if it
// does not exist.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents string) error {
	return os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// exchangeId is "<n>_<host><path>.txt" with anything unfit for a filename
// replaced.
func exchangeId(n uint64, rawUrl string) string {
	name := rawUrl
	parsed, err := url.Parse(rawUrl)
	if err == nil {
		name = parsed.Host + parsed.Path
	}
	name = unsafeFilename.ReplaceAllString(name, "_")
	return fmt.Sprintf("%03d_%s.txt", n, name)
}

// Dump writes every response `client` receives, along with its request, to
// `output`. Failures to write are passed to `onError`.
func Dump(client *resty.Client, output Output, onError func(id string, err error)) {
	var counter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := exchangeId(atomic.AddUint64(&counter, 1), res.Request.URL)
		err := output.Write(id, formatHttpMessage(res))
		if err != nil && onError != nil {
			onError(id, err)
		}
		return nil
	})
}
