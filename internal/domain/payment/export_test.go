package payment

// Costuras para os testes externos do pacote.
var (
	OverrideAffects  = overrideAffects
	ResolveOverrides = resolveOverrides
)
