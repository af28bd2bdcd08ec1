package metrics

// Attribute keys attached to exported instruments.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrEndpoint = "endpoint"
	AttrFrom     = "from"
	AttrTo       = "to"
	AttrOutcome  = "outcome"
)
