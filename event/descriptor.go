package event

// Descriptor is the typed event symbol a Service hands back from
// Register/Resolve. It implements graph.EventRef so a CommandEmitEvent can
// reference it without package graph importing event.
type Descriptor struct {
	name string
	sig  Signature
}

// EventName implements graph.EventRef.
func (d *Descriptor) EventName() string { return d.name }

// Signature returns the argument shape d was registered with.
func (d *Descriptor) Signature() Signature { return d.sig }
