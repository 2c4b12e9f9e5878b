// Package sound plays short cues for game events.
package sound

// 音效名，对应 sound 目录下同名的 .mp3 / .wav 文件
const (
	CueStart    = "start"
	CueMove     = "move"
	CueCheck    = "check"
	CueGameOver = "game_over"
	CueNotify   = "notify"
)
