// Package main provides localization for the vidsz CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for log messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Transcode command
		"wrote %d frames (%.1f s) to %s": "%d フレーム（%.1f 秒）を %s に書き込みました",

		// Reader / writer debug logs
		"opened %s (%dx%d @ %g fps)":      "%s を開きました（%dx%d @ %g fps）",
		"created %s (%dx%d @ %g fps, %s)": "%s を作成しました（%dx%d @ %g fps、%s）",
		"released %s after %d frames":     "%s を解放しました（%d フレーム処理済み）",
	})
}
