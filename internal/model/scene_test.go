package model

import (
	"testing"
)

func TestSceneReadOnly(t *testing.T) {
	official := Scene{SceneType: SceneTypeOfficial}
	if !official.ReadOnly() {
		t.Fatal("official scene should be read-only")
	}

	custom := Scene{SceneType: SceneTypeCustom}
	if custom.ReadOnly() {
		t.Fatal("custom scene should be writable")
	}
}
