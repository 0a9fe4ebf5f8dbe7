// Package derive maps protobuf message descriptors onto hints, so a
// message decoded into plain Go values (map[string]any and friends)
// can be checked against the shape its schema declares.
package derive

import (
	"fmt"
	"sync"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/hintwire/hintcheck/internal/hint"
)

// Registry of loaded proto file descriptors, keyed by file name.
var (
	protoRegistry      = make(map[string]*desc.FileDescriptor)
	protoRegistryMutex sync.RWMutex
)

// LoadProtoFiles parses .proto files from disk and registers their
// descriptors.
func LoadProtoFiles(importPaths []string, filenames ...string) ([]*desc.FileDescriptor, error) {
	parser := protoparse.Parser{ImportPaths: importPaths}
	fds, err := parser.ParseFiles(filenames...)
	if err != nil {
		return nil, fmt.Errorf("parsing proto files: %w", err)
	}
	register(fds)
	return fds, nil
}

// LoadProtoSource parses in-memory .proto source and registers its
// descriptor.
func LoadProtoSource(filename, source string) (*desc.FileDescriptor, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{filename: source}),
	}
	fds, err := parser.ParseFiles(filename)
	if err != nil {
		return nil, fmt.Errorf("parsing proto source %s: %w", filename, err)
	}
	register(fds)
	return fds[0], nil
}

func register(fds []*desc.FileDescriptor) {
	protoRegistryMutex.Lock()
	defer protoRegistryMutex.Unlock()
	for _, fd := range fds {
		protoRegistry[fd.GetName()] = fd
	}
}

// FindMessage resolves a fully-qualified message name against every
// registered file.
func FindMessage(name string) (*desc.MessageDescriptor, error) {
	protoRegistryMutex.RLock()
	defer protoRegistryMutex.RUnlock()
	for _, fd := range protoRegistry {
		if md := fd.FindMessage(name); md != nil {
			return md, nil
		}
	}
	return nil, fmt.Errorf("message %s not found in any loaded proto file", name)
}

// HintFor derives the hint for a registered message by name.
func HintFor(messageName string) (hint.Hint, error) {
	md, err := FindMessage(messageName)
	if err != nil {
		return nil, err
	}
	return MessageHint(md), nil
}

// MessageHint derives the structural hint of a message decoded into a
// map keyed by field name: string keys, values drawn from the union of
// the message's field hints. Per-field precision is available through
// FieldHint; the message-level hint is deliberately a shape check, not
// a field-by-field schema validation.
func MessageHint(md *desc.MessageDescriptor) hint.Hint {
	return messageHint(md, map[string]bool{})
}

func messageHint(md *desc.MessageDescriptor, seen map[string]bool) hint.Hint {
	if seen[md.GetFullyQualifiedName()] {
		// Recursive message: the nested occurrence degrades to an
		// unconstrained mapping, cutting the cycle.
		return hint.Dict(hint.Str(), hint.Any{})
	}
	seen[md.GetFullyQualifiedName()] = true
	defer delete(seen, md.GetFullyQualifiedName())

	fields := md.GetFields()
	if len(fields) == 0 {
		return hint.Dict(hint.Str(), hint.Any{})
	}

	members := make([]hint.Hint, 0, len(fields))
	for _, fd := range fields {
		members = append(members, fieldHint(fd, seen))
	}
	value := hint.Hint(hint.Union{Members: members})
	if len(members) == 1 {
		value = members[0]
	}
	return hint.Dict(hint.Str(), value)
}

// FieldHint derives the hint one field's decoded value must satisfy:
// scalar fields map to builtin classes, repeated fields to sequences,
// map fields to mappings, message fields to the nested message's hint
// and enum fields to an int-or-name union.
func FieldHint(fd *desc.FieldDescriptor) hint.Hint {
	return fieldHint(fd, map[string]bool{})
}

func fieldHint(fd *desc.FieldDescriptor, seen map[string]bool) hint.Hint {
	if fd.IsMap() {
		return hint.Dict(
			scalarHint(fd.GetMapKeyType(), seen),
			scalarHint(fd.GetMapValueType(), seen),
		)
	}
	if fd.IsRepeated() {
		return hint.List(scalarHint(fd, seen))
	}
	return scalarHint(fd, seen)
}

func scalarHint(fd *desc.FieldDescriptor, seen map[string]bool) hint.Hint {
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_INT32,
		descriptorpb.FieldDescriptorProto_TYPE_SINT32,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED32,
		descriptorpb.FieldDescriptorProto_TYPE_INT64,
		descriptorpb.FieldDescriptorProto_TYPE_SINT64,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED64,
		descriptorpb.FieldDescriptorProto_TYPE_UINT32,
		descriptorpb.FieldDescriptorProto_TYPE_FIXED32,
		descriptorpb.FieldDescriptorProto_TYPE_UINT64,
		descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		return hint.Int()
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT,
		descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return hint.Float()
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return hint.Bool()
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return hint.Str()
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return hint.Class{Type: hint.BytesType}
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		// Enums decode as either the numeric value or the value name.
		return hint.Union{Members: []hint.Hint{hint.Int(), hint.Str()}}
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE,
		descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		return messageHint(fd.GetMessageType(), seen)
	}
	return hint.Any{}
}
