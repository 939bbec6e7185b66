// Package registry implements the registry/proxy layer for node and
// channel lifecycle: nodes register named channels, other nodes look them
// up by name, and the registry persists the assignment so a restarted node
// can rediscover its peers.
//
// Every request and response is a Message containing an Array whose first
// element is an Integer operation code, followed by the operation's typed
// arguments. The registry never inspects argument values beyond what it
// needs to persist them: it is a thin proxy over the codec, not a second
// type system.
package registry

import (
	"fmt"

	"github.com/nimo-project/nimo/value"
)

// Operation identifies a registry request or response kind. It is carried
// on the wire as the first element of the request/response Array, encoded
// as a plain value.Integer.
type Operation int64

const (
	// OpRegisterChannel registers (name, address, port, transport).
	OpRegisterChannel Operation = 1
	// OpUnregisterChannel removes a previously registered channel by name.
	OpUnregisterChannel Operation = 2
	// OpLookupChannel resolves a channel name to its registration.
	OpLookupChannel Operation = 3
	// OpListChannels returns every currently registered channel name.
	OpListChannels Operation = 4
	// OpPing is a liveness check; the registry echoes OpPing back.
	OpPing Operation = 5

	// OpOK is the response operation code for a request that succeeded
	// with no result payload beyond "it worked".
	OpOK Operation = 100
	// OpError is the response operation code for a failed request; the
	// single String argument following it is the error message.
	OpError Operation = 101
	// OpChannelInfo is the response to OpLookupChannel: (name, address,
	// port, transport).
	OpChannelInfo Operation = 102
	// OpChannelList is the response to OpListChannels: each remaining
	// argument is a channel name String.
	OpChannelList Operation = 103
)

func (o Operation) String() string {
	switch o {
	case OpRegisterChannel:
		return "RegisterChannel"
	case OpUnregisterChannel:
		return "UnregisterChannel"
	case OpLookupChannel:
		return "LookupChannel"
	case OpListChannels:
		return "ListChannels"
	case OpPing:
		return "Ping"
	case OpOK:
		return "OK"
	case OpError:
		return "Error"
	case OpChannelInfo:
		return "ChannelInfo"
	case OpChannelList:
		return "ChannelList"
	default:
		return fmt.Sprintf("Operation(%d)", int64(o))
	}
}

// Channel describes a single registered channel.
type Channel struct {
	Name      string
	Address   string
	Port      int64
	Transport string
}

// encodeRequest builds the Array wire payload for op with args appended in
// order.
func encodeRequest(op Operation, args ...value.Value) *value.Array {
	arr := value.NewArray()
	arr.Append(value.NewInteger(int64(op)))
	for _, a := range args {
		arr.Append(a)
	}

	return arr
}

// decodeOperation reads the leading operation code out of a response/request
// Array. ok is false if v is not an Array or the Array is empty or its
// first element is not an Integer.
func decodeOperation(v value.Value) (Operation, *value.Array, bool) {
	arr, ok := value.AsArray(v)
	if !ok || arr.Len() == 0 {
		return 0, nil, false
	}

	n, ok := value.AsInteger(arr.At(0))
	if !ok {
		return 0, nil, false
	}

	return Operation(n.Int64()), arr, true
}
