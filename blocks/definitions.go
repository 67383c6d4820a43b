package blocks

// Block ids of the built-in table.
const (
	Cobblestone ID = iota + 1
	Grass
	Dirt
	Stone
	Sand
	Planks
	Log
	Leaves
	Glass
	Bedrock
	Bricks
	Gravel
)

func all(tex string) [6]string {
	return [6]string{tex, tex, tex, tex, tex, tex}
}

// sides uses top/bottom for ±Y and side for the four walls.
func sides(side, top, bottom string) [6]string {
	return [6]string{side, side, top, bottom, side, side}
}

// Definitions is the fixed block table loaded at startup.
var Definitions = []Type{
	{ID: Air, Name: "air"},
	{ID: Cobblestone, Name: "cobblestone", Textures: all("cobblestone")},
	{ID: Grass, Name: "grass", Textures: sides("grass_side", "grass", "dirt")},
	{ID: Dirt, Name: "dirt", Textures: all("dirt")},
	{ID: Stone, Name: "stone", Textures: all("stone")},
	{ID: Sand, Name: "sand", Textures: all("sand")},
	{ID: Planks, Name: "planks", Textures: all("planks")},
	{ID: Log, Name: "log", Textures: sides("log_side", "log_y", "log_y")},
	{ID: Leaves, Name: "leaves", Textures: all("leaves"), Transparent: true},
	{ID: Glass, Name: "glass", Textures: all("glass"), Transparent: true},
	{ID: Bedrock, Name: "bedrock", Textures: all("bedrock")},
	{ID: Bricks, Name: "bricks", Textures: all("bricks")},
	{ID: Gravel, Name: "gravel", Textures: all("gravel")},
}
