package di

import "strings"

// Default element sizes.
var (
	SizeActivity       = Size{Width: 100, Height: 80}
	SizeGateway        = Size{Width: 50, Height: 50}
	SizeEvent          = Size{Width: 36, Height: 36}
	SizeSubProcess     = Size{Width: 350, Height: 200}
	SizeDataObjectRef  = Size{Width: 36, Height: 50}
	SizeDataStoreRef   = Size{Width: 50, Height: 50}
	SizeTextAnnotation = Size{Width: 100, Height: 30}
)

// DefaultSize returns the presentation size for a BPMN element type given by
// its local XML name (for example "userTask" or "exclusiveGateway").
// Unknown types are sized as activities.
func DefaultSize(elementType string) Size {
	t := strings.ToLower(elementType)
	switch {
	case strings.HasSuffix(t, "gateway"):
		return SizeGateway
	case strings.HasSuffix(t, "event"):
		return SizeEvent
	case t == "subprocess" || t == "adhocsubprocess" || t == "transaction":
		return SizeSubProcess
	case t == "dataobjectreference":
		return SizeDataObjectRef
	case t == "datastorereference":
		return SizeDataStoreRef
	case t == "textannotation":
		return SizeTextAnnotation
	default:
		return SizeActivity
	}
}
