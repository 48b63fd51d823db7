package sceneio

import "errors"

// Sentinel load errors (spec §7 "Scene loading" configuration errors): every
// one of these is fatal to the load, never a silent fallback.
var (
	ErrNoDefaultScene     = errors.New("sceneio: glTF document has no default scene")
	ErrMissingSceneExtras = errors.New("sceneio: default scene is missing its extras object")
	ErrMissingNodeExtras  = errors.New("sceneio: node is missing its extras object")
	ErrMissingSource      = errors.New("sceneio: scene has no active source node")
	ErrMissingReceiver    = errors.New("sceneio: scene has no active receiver node")
)
