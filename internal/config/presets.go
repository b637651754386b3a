package config

import "sort"

var Presets = map[string]string{
	"default": `board name=Default gravity=25.0

# balls
ball name=BallA x=1.8 y=4.5 xVelocity=-3.4 yVelocity=-2.3
ball name=BallB x=10.25 y=15.25 xVelocity=0 yVelocity=0

# a row of square bumpers
squareBumper name=Square0 x=0 y=17
squareBumper name=Square1 x=1 y=17
squareBumper name=Square2 x=2 y=17
squareBumper name=Square3 x=3 y=17

# a diagonal of circle bumpers
circleBumper name=Circle0 x=1 y=10
circleBumper name=Circle1 x=2 y=11
circleBumper name=Circle2 x=3 y=12
circleBumper name=Circle3 x=4 y=13
circleBumper name=Circle4 x=5 y=14

triangleBumper name=Tri0 x=12 y=15 orientation=180
triangleBumper name=Tri1 x=19 y=0 orientation=90
`,

	"absorber": `board name=Absorber gravity=25.0

ball name=BallA x=10.25 y=15.25 xVelocity=0 yVelocity=0
ball name=BallB x=19.25 y=3.25 xVelocity=0 yVelocity=0
ball name=BallC x=1.25 y=5.25 xVelocity=0 yVelocity=0

triangleBumper name=Tri x=19 y=0 orientation=90
circleBumper name=CircleA x=1 y=10
circleBumper name=CircleB x=2 y=10
circleBumper name=CircleC x=3 y=10
circleBumper name=CircleD x=4 y=10
circleBumper name=CircleE x=5 y=10

absorber name=Abs1 x=0 y=18 width=20 height=2
fire trigger=Abs1 action=Abs1
`,

	"triggers": `board name=Triggers gravity=20.0 friction1=0.02 friction2=0.02

ball name=Ball x=0.5 y=0.5 xVelocity=2.5 yVelocity=2.5

squareBumper name=Left x=4 y=8
squareBumper name=Right x=15 y=8
circleBumper name=Kicker x=10 y=5
triangleBumper name=RampL x=7 y=12 orientation=270
triangleBumper name=RampR x=12 y=12 orientation=180

absorber name=LeftGate x=0 y=19 width=10 height=1
absorber name=RightGate x=10 y=19 width=10 height=1

# gates release each other
fire trigger=Left action=LeftGate
fire trigger=Right action=RightGate
fire trigger=Kicker action=LeftGate
fire trigger=LeftGate action=RightGate
fire trigger=RightGate action=LeftGate
`,

	"pinball": `board name=Pinball gravity=25.0 friction1=0.025 friction2=0.025

ball name=Ball1 x=19.5 y=5.5 xVelocity=0 yVelocity=0
ball name=Ball2 x=5.5 y=2.5 xVelocity=4 yVelocity=0

triangleBumper name=CornerL x=0 y=0 orientation=0
triangleBumper name=CornerR x=19 y=0 orientation=90

circleBumper name=Pop1 x=6 y=6
circleBumper name=Pop2 x=10 y=4
circleBumper name=Pop3 x=14 y=6

squareBumper name=PostL x=4 y=12
squareBumper name=PostR x=15 y=12
triangleBumper name=SlingL x=5 y=15 orientation=270
triangleBumper name=SlingR x=14 y=15 orientation=180

absorber name=Launcher x=19 y=12 width=1 height=8
absorber name=Drain x=0 y=19 width=19 height=1

fire trigger=Launcher action=Launcher
fire trigger=Drain action=Launcher
fire trigger=Pop2 action=Drain
`,
}

// GetPreset returns the .fb source of a built-in board.
func GetPreset(name string) (string, bool) {
	src, ok := Presets[name]
	return src, ok
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
