package slack_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	chat "github.com/Afrawles/ticketcharts/internal/slack"
	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"
)

type mockSlackClient struct {
	params []slack.UploadFileV2Parameters
	err    error
}

func (m *mockSlackClient) UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error) {
	m.params = append(m.params, params)
	if m.err != nil {
		return nil, m.err
	}
	return &slack.FileSummary{ID: "F123", Title: params.Title}, nil
}

func writeChart(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte("jpeg bytes"), 0644))
	return path
}

func TestUpload(t *testing.T) {
	client := &mockSlackClient{}
	uploader := chat.NewWithClient(client, "C0123")

	path := writeChart(t, "support.jpg")
	gt.NoError(t, uploader.Upload(context.Background(), path))

	gt.A(t, client.params).Length(1)
	p := client.params[0]
	gt.Equal(t, p.Channel, "C0123")
	gt.Equal(t, p.File, path)
	gt.Equal(t, p.FileSize, len("jpeg bytes"))
	gt.Equal(t, p.Filename, "support.jpg")
	gt.Equal(t, p.Title, "support")
	gt.Equal(t, p.InitialComment, "*Support*")
}

func TestUploadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		client := &mockSlackClient{}
		err := chat.NewWithClient(client, "C0123").Upload(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"))
		gt.Error(t, err)
		gt.A(t, client.params).Length(0)
	})

	t.Run("api failure", func(t *testing.T) {
		boom := errors.New("channel_not_found")
		client := &mockSlackClient{err: boom}
		err := chat.NewWithClient(client, "C0123").Upload(context.Background(), writeChart(t, "p1p2.jpg"))
		gt.Error(t, err)
		gt.True(t, errors.Is(err, boom))
	})
}

func TestComment(t *testing.T) {
	gt.Equal(t, chat.Comment("support"), "*Support*")
	gt.Equal(t, chat.Comment("mix"), "*Mix*")
}
