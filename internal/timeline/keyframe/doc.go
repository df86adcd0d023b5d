// Package keyframe provides per-track property animation: named
// property tracks of time-sorted keyframes and value evaluation with
// configurable easing.
//
// Evaluation clamps to the first keyframe's value before the first time
// and to the last keyframe's value after the last time. Between two
// keyframes the normalized offset t is fed through the leading
// keyframe's easing law and used to interpolate the pair:
//
//	anim := keyframe.NewAnimation(10 * time.Second)
//	anim.AddKeyframe("opacity", 0, 0.0, keyframe.Linear)
//	anim.AddKeyframe("opacity", 10*time.Second, 1.0, keyframe.EaseOut)
//	v, _ := anim.ValueAt("opacity", 5*time.Second)
package keyframe
