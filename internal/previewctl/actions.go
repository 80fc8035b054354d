package previewctl

// Indirection layer to allow stubbing in tests

var (
	fnStatus     = statusAction
	fnAssets     = assetsAction
	fnVisibility = visibilityAction
	fnCheck      = checkAction

	fnMount   = mountAction
	fnGet     = getAction
	fnVisible = visibleAction
	fnCancel  = cancelAction
	fnImage   = imageAction

	fnRender = renderAction
	fnWarm   = warmAction
)
