// Package signal encodes the broadcast messages exchanged on a room channel.
package signal

import (
	"context"
	"encoding/json"

	"github.com/pion/webrtc/v4"

	"github.com/dowdarts/spectators-videochat/internal/constants"
	"github.com/dowdarts/spectators-videochat/internal/errors"
	"github.com/dowdarts/spectators-videochat/internal/realtime"
)

const ErrUnknownMessage errors.Code = "unknown signal message"

// Broadcast event names.
const (
	EventOffer        = "offer"
	EventAnswer       = "answer"
	EventICECandidate = "ice-candidate"
	EventOfferRequest = "offer-request"
	EventLobbyPing    = "lobby-ping"
	EventLobbyPong    = "lobby-pong"
)

// Message is one decoded channel event.
type Message interface {
	isMessage()
}

type Offer struct {
	Token string                    `json:"token"`
	Offer webrtc.SessionDescription `json:"offer"`
}

type Answer struct {
	Token  string                    `json:"token"`
	Answer webrtc.SessionDescription `json:"answer"`
}

type ICECandidate struct {
	Token     string                  `json:"token"`
	Candidate webrtc.ICECandidateInit `json:"candidate"`
}

type OfferRequest struct {
	Token string `json:"token"`
}

type LobbyPing struct {
	TS int64 `json:"ts"`
}

type LobbyPong struct {
	Role constants.PresenceRole `json:"role"`
}

// PresenceSync carries the full presence of a channel.
type PresenceSync struct {
	Presences map[string][]Presence
}

// Presence is the payload a client tracks on a room channel.
type Presence struct {
	Role  constants.PresenceRole `json:"role"`
	Token string                 `json:"token,omitempty"`
	User  string                 `json:"user,omitempty"`
}

func (*Offer) isMessage()        {}
func (*Answer) isMessage()       {}
func (*ICECandidate) isMessage() {}
func (*OfferRequest) isMessage() {}
func (*LobbyPing) isMessage()    {}
func (*LobbyPong) isMessage()    {}
func (*PresenceSync) isMessage() {}

// Topic is the channel name of a room.
func Topic(roomCode string) string {
	return constants.ChannelPrefix + roomCode
}

// EventName returns the broadcast event name for msg.
func EventName(msg Message) (string, error) {
	switch msg.(type) {
	case *Offer:
		return EventOffer, nil
	case *Answer:
		return EventAnswer, nil
	case *ICECandidate:
		return EventICECandidate, nil
	case *OfferRequest:
		return EventOfferRequest, nil
	case *LobbyPing:
		return EventLobbyPing, nil
	case *LobbyPong:
		return EventLobbyPong, nil
	default:
		return "", errors.Newf(ErrUnknownMessage, "%T is not broadcastable", msg)
	}
}

// Decode turns a channel event into a Message. Status events and unknown
// broadcasts yield ErrUnknownMessage.
func Decode(ev realtime.Event) (Message, error) {
	switch ev.Kind {
	case realtime.EventPresenceSync:
		return decodePresence(ev.Presence), nil
	case realtime.EventBroadcast:
	default:
		return nil, errors.Newf(ErrUnknownMessage, "event kind %d", ev.Kind)
	}

	var msg Message
	switch ev.Name {
	case EventOffer:
		msg = &Offer{}
	case EventAnswer:
		msg = &Answer{}
	case EventICECandidate:
		msg = &ICECandidate{}
	case EventOfferRequest:
		msg = &OfferRequest{}
	case EventLobbyPing:
		msg = &LobbyPing{}
	case EventLobbyPong:
		msg = &LobbyPong{}
	default:
		return nil, errors.Newf(ErrUnknownMessage, "event %q", ev.Name)
	}

	if err := json.Unmarshal(ev.Payload, msg); err != nil {
		return nil, errors.Wrapf(ErrUnknownMessage, err, "decode %s", ev.Name)
	}
	return msg, nil
}

// DecodePresence parses one tracked payload. Unparseable payloads come back
// with an empty role.
func DecodePresence(raw json.RawMessage) Presence {
	var p Presence
	_ = json.Unmarshal(raw, &p)
	return p
}

func decodePresence(state realtime.PresenceState) *PresenceSync {
	out := &PresenceSync{Presences: make(map[string][]Presence, len(state))}
	for key, metas := range state {
		for _, m := range metas {
			out.Presences[key] = append(out.Presences[key], DecodePresence(m))
		}
	}
	return out
}

// Participants lists the user names of non-observer presences.
func (p *PresenceSync) Participants() []string {
	var names []string
	for key, metas := range p.Presences {
		for _, m := range metas {
			if m.Role == constants.RoleObserver {
				continue
			}
			name := m.User
			if name == "" {
				name = key
			}
			names = append(names, name)
		}
	}
	return names
}

// Send broadcasts msg on ch under its event name.
func Send(ctx context.Context, ch realtime.Channel, msg Message) error {
	name, err := EventName(msg)
	if err != nil {
		return err
	}
	return ch.Send(ctx, name, msg)
}
