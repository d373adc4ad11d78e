package engine

// moveTick advances the snake one cell in the pending direction.
// Runs with g.mu held.
func (g *Game) moveTick() {
	if g.over {
		return
	}
	g.ticks++

	next, ok := g.board.Step(g.snake.Head().Cell, g.direction)
	if !ok {
		g.finish(ReasonBoundary)
		return
	}

	result := g.snake.Extend(next)
	switch result.Outcome {
	case Collision:
		g.finish(ReasonSelfCollision)
		return

	case GrewOntoFood:
		// Net growth: the tail stays
		g.food.Consume(next)
		g.renderer.OnSquareRemoved(next)
		g.renderer.OnSquareAdded(next, SquareSnake)

	case MovedOntoEmpty:
		g.renderer.OnSquareAdded(next, SquareSnake)
		if tail, ok := g.snake.Shrink(); ok {
			g.renderer.OnSquareRemoved(tail.Cell)
		}
	}

	g.scheduleMove()
}

// spawnTick tries to place food at a random cell, then reschedules itself every turn interval.
// Runs with g.mu held.
func (g *Game) spawnTick() {
	if g.over {
		return
	}
	g.placeFood(nil)
	g.spawnTask = g.sched.After(g.config.TurnInterval(), g.spawnTick)
}

func (g *Game) placeFood(requested *Cell) bool {
	sq, ok := g.food.TrySpawn(requested)
	if ok {
		g.renderer.OnSquareAdded(sq.Cell, SquareFood)
	}
	return ok
}

// handleFoodExpired forwards an expired item to the renderer. Runs with g.mu held.
func (g *Game) handleFoodExpired(sq OccupiedSquare) {
	g.renderer.OnFoodExpiring(sq.Cell)
}

// scheduleMove arms the next move tick; the interval shrinks as the snake grows
func (g *Game) scheduleMove() {
	g.moveTask = g.sched.After(g.config.TickInterval(g.snake.Len()), g.moveTick)
}

// finish performs the one-way transition to game over
func (g *Game) finish(reason GameOverReason) {
	if g.over {
		return
	}
	g.over = true
	g.outcome = Outcome{
		Reason: reason,
		Length: g.snake.Len(),
		Ticks:  g.ticks,
	}

	g.sched.Cancel(g.moveTask)
	g.sched.Cancel(g.spawnTask)
	close(g.done)

	if obs, ok := g.renderer.(GameOverObserver); ok {
		obs.OnGameOver(g.outcome)
	}
}
