// FILE: lixenwraith/emaconfig/schema.go
package emaconfig

import "fmt"

// EntityKind names one of the logical entity lists shared by the file tree and
// programmatic documents: a group holds a list, which holds named entries.
type EntityKind uint8

const (
	EntityConsumer EntityKind = iota
	EntityChannel
	EntityLogger
	EntityDictionary
)

func (k EntityKind) String() string {
	switch k {
	case EntityConsumer:
		return "Consumer"
	case EntityChannel:
		return "Channel"
	case EntityLogger:
		return "Logger"
	case EntityDictionary:
		return "Dictionary"
	}
	return fmt.Sprintf("EntityKind(%d)", uint8(k))
}

// Group returns the group element name, e.g. "ChannelGroup".
func (k EntityKind) Group() string { return k.String() + "Group" }

// List returns the list element name, e.g. "ChannelList".
func (k EntityKind) List() string { return k.String() + "List" }

// Entry returns the entry element name, e.g. "Channel".
func (k EntityKind) Entry() string { return k.String() }

// entityPath builds the tree path of one field of a named entry.
func entityPath(kind EntityKind, name, field string) string {
	return kind.Group() + "|" + kind.List() + "|" + kind.Entry() + "." + name + "|" + field
}

const defaultConsumerPath = "ConsumerGroup|DefaultConsumer"
