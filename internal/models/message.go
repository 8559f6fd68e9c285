package models

import "time"

// MessageKind controls how a chat message is displayed
type MessageKind string

const (
	KindNarration MessageKind = "narration"
	KindDialogue  MessageKind = "dialogue"
	KindSystem    MessageKind = "system"
	KindThought   MessageKind = "thought"
)

// GMSenderID is the sender ID used for everything the narrator says
const GMSenderID = "GM"

// ChatMessage is an entry in the append-only game log
type ChatMessage struct {
	ID         string
	SenderID   string
	SenderName string
	Content    string
	Timestamp  time.Time
	Kind       MessageKind
}
