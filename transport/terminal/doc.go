// Package terminal plays a snake game in the local terminal using tcell.
//
// Renderer is an engine.Renderer that records board changes and paints them on
// demand: the snake as █, food as ●, and expired food fading out before it
// disappears. Player owns the event loop: it starts the game, maps keys to
// commands (arrows, WASD or hjkl to steer, p or space to pause, q or Esc to
// quit) and redraws about thirty times a second.
package terminal
