package discord

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

func restError(status int) error {
	return &discordgo.RESTError{
		Response:     &http.Response{StatusCode: status, Status: http.StatusText(status)},
		ResponseBody: []byte(`{"message":"error"}`),
	}
}

type fakeMessenger struct {
	sent    map[string]string
	edits   map[string]string
	sendErr error
	editErr error
	nextID  int
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{sent: map[string]string{}, edits: map[string]string{}}
}

func (f *fakeMessenger) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.nextID++
	id := channelID + "/" + string(rune('a'+f.nextID-1))
	f.sent[id] = content
	return &discordgo.Message{ID: id, ChannelID: channelID, Content: content}, nil
}

func (f *fakeMessenger) ChannelMessageEdit(channelID, messageID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.editErr != nil {
		return nil, f.editErr
	}
	f.edits[messageID] = content
	return &discordgo.Message{ID: messageID, ChannelID: channelID, Content: content}, nil
}

type fakeUsers struct {
	users map[string]*discordgo.User
	err   error
	calls int
}

func (f *fakeUsers) User(userID string, _ ...discordgo.RequestOption) (*discordgo.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, restError(http.StatusNotFound)
	}
	return u, nil
}

var errNetwork = errors.New("connection reset")
