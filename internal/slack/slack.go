// Package slack posts rendered charts to a Slack channel.
package slack

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FileUploader is the part of *slack.Client the uploader needs.
type FileUploader interface {
	UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
}

type Uploader struct {
	client  FileUploader
	channel string
}

// New creates an uploader posting to channel with a bot token.
func New(token, channel string) *Uploader {
	return NewWithClient(slack.New(token), channel)
}

func NewWithClient(client FileUploader, channel string) *Uploader {
	return &Uploader{client: client, channel: channel}
}

// Upload sends the file at path to the channel. The title is the file name
// without its extension and the comment is that title in bold.
func (u *Uploader) Upload(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return goerr.Wrap(err, "failed to stat upload", goerr.V("path", path))
	}

	name := filepath.Base(path)
	title := strings.TrimSuffix(name, filepath.Ext(name))

	summary, err := u.client.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		File:           path,
		FileSize:       int(info.Size()),
		Filename:       name,
		Title:          title,
		InitialComment: Comment(title),
		Channel:        u.channel,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to upload file to slack",
			goerr.V("path", path),
			goerr.V("channel", u.channel),
		)
	}

	ctxlog.From(ctx).Info("chart uploaded", "file", name, "slack_file_id", summary.ID)
	return nil
}

// Comment formats the message posted alongside an upload.
func Comment(title string) string {
	return "*" + cases.Title(language.English).String(title) + "*"
}
