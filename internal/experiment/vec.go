package experiment

import "github.com/san-kum/bounce/internal/dynamo"

func vec(x, y float64) dynamo.Vec2 { return dynamo.Vec2{X: x, Y: y} }
