package block

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/toole-brendan/nanogo/address"
	"github.com/toole-brendan/nanogo/nanoerr"
)

func hexUpper(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

type stateJSON struct {
	Type           string `json:"type"`
	Account        string `json:"account"`
	Previous       string `json:"previous"`
	Representative string `json:"representative"`
	Balance        string `json:"balance"`
	Link           string `json:"link"`
	LinkAsAccount  string `json:"link_as_account"`
	Signature      string `json:"signature"`
	Work           string `json:"work"`
}

type sendJSON struct {
	Type        string `json:"type"`
	Previous    string `json:"previous"`
	Destination string `json:"destination"`
	Balance     string `json:"balance"`
	Work        string `json:"work"`
	Signature   string `json:"signature"`
}

type receiveJSON struct {
	Type      string `json:"type"`
	Previous  string `json:"previous"`
	Source    string `json:"source"`
	Work      string `json:"work"`
	Signature string `json:"signature"`
}

type openJSON struct {
	Type           string `json:"type"`
	Source         string `json:"source"`
	Representative string `json:"representative"`
	Account        string `json:"account"`
	Work           string `json:"work"`
	Signature      string `json:"signature"`
}

type changeJSON struct {
	Type           string `json:"type"`
	Previous       string `json:"previous"`
	Representative string `json:"representative"`
	Work           string `json:"work"`
	Signature      string `json:"signature"`
}

// MarshalJSON renders the block in the reference node's `process` RPC input
// shape: a fixed key order per variant, 32-byte fields as uppercase hex,
// account-shaped fields as nano_/xrb_ addresses, work as lowercase hex, and
// balance as a decimal string.
func (b *Block) MarshalJSON() ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	prefix := b.addressPrefix
	work := ""
	if b.hasWork {
		work = encodeWork(b.work)
	}
	sig := ""
	if b.hasSignature {
		sig = hexUpper(b.signature[:])
	}

	switch b.kind {
	case KindState:
		return json.Marshal(stateJSON{
			Type:           "state",
			Account:        address.Encode(b.account, prefix),
			Previous:       hexUpper(b.previous[:]),
			Representative: address.Encode(b.representative, prefix),
			Balance:        b.balance.String(),
			Link:           hexUpper(b.link[:]),
			LinkAsAccount:  address.Encode(b.link, prefix),
			Signature:      sig,
			Work:           work,
		})
	case KindSend:
		return json.Marshal(sendJSON{
			Type:        "send",
			Previous:    hexUpper(b.previous[:]),
			Destination: address.Encode(b.destination, prefix),
			Balance:     b.balance.String(),
			Work:        work,
			Signature:   sig,
		})
	case KindReceive:
		return json.Marshal(receiveJSON{
			Type:      "receive",
			Previous:  hexUpper(b.previous[:]),
			Source:    hexUpper(b.source[:]),
			Work:      work,
			Signature: sig,
		})
	case KindOpen:
		return json.Marshal(openJSON{
			Type:           "open",
			Source:         hexUpper(b.source[:]),
			Representative: address.Encode(b.representative, prefix),
			Account:        address.Encode(b.account, prefix),
			Work:           work,
			Signature:      sig,
		})
	case KindChange:
		return json.Marshal(changeJSON{
			Type:           "change",
			Previous:       hexUpper(b.previous[:]),
			Representative: address.Encode(b.representative, prefix),
			Work:           work,
			Signature:      sig,
		})
	default:
		return nil, nanoerr.New(nanoerr.InvalidBlock, "unknown block kind")
	}
}

// typeProbe recovers just the "type" discriminator from a JSON blob.
type typeProbe struct {
	Type string `json:"type"`
}

// FromJSON parses data into a new Block, dispatching on its "type" key.
func FromJSON(data []byte) (*Block, error) {
	var probe typeProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nanoerr.Wrap(nanoerr.InvalidBlock, "parsing block JSON", err)
	}

	switch probe.Type {
	case "state":
		var v stateJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, nanoerr.Wrap(nanoerr.InvalidBlock, "parsing state block JSON", err)
		}
		return New(KindState, Fields{
			Account:        v.Account,
			Previous:       v.Previous,
			Representative: v.Representative,
			Balance:        v.Balance,
			Link:           v.Link,
			Signature:      v.Signature,
			Work:           v.Work,
		})
	case "send":
		var v sendJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, nanoerr.Wrap(nanoerr.InvalidBlock, "parsing send block JSON", err)
		}
		return New(KindSend, Fields{
			Previous:    v.Previous,
			Destination: v.Destination,
			Balance:     v.Balance,
			Signature:   v.Signature,
			Work:        v.Work,
		})
	case "receive":
		var v receiveJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, nanoerr.Wrap(nanoerr.InvalidBlock, "parsing receive block JSON", err)
		}
		return New(KindReceive, Fields{
			Previous:  v.Previous,
			Source:    v.Source,
			Signature: v.Signature,
			Work:      v.Work,
		})
	case "open":
		var v openJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, nanoerr.Wrap(nanoerr.InvalidBlock, "parsing open block JSON", err)
		}
		return New(KindOpen, Fields{
			Source:         v.Source,
			Representative: v.Representative,
			Account:        v.Account,
			Signature:      v.Signature,
			Work:           v.Work,
		})
	case "change":
		var v changeJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, nanoerr.Wrap(nanoerr.InvalidBlock, "parsing change block JSON", err)
		}
		return New(KindChange, Fields{
			Previous:       v.Previous,
			Representative: v.Representative,
			Signature:      v.Signature,
			Work:           v.Work,
		})
	default:
		return nil, nanoerr.New(nanoerr.InvalidBlock, "unrecognized block type \""+probe.Type+"\"")
	}
}

// ToDict renders the same fields MarshalJSON does as a map, for callers
// that want a dictionary rather than raw JSON bytes. Map key order is not
// significant in Go, so this does not attempt to preserve one.
func (b *Block) ToDict() (map[string]string, error) {
	raw, err := b.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nanoerr.Wrap(nanoerr.InvalidBlock, "converting block to dict", err)
	}
	return m, nil
}

// FromDict is the map-based counterpart to FromJSON.
func FromDict(m map[string]string) (*Block, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, nanoerr.Wrap(nanoerr.InvalidBlock, "converting dict to block", err)
	}
	return FromJSON(raw)
}
