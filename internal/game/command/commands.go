// Package command defines the console command set: names, aliases, help
// text and the handler each command dispatches to.
package command

// Categories for organizing commands in help output.
const (
	CategoryMovement  = "movement"
	CategoryWorld     = "world"
	CategoryCombat    = "combat"
	CategoryCharacter = "character"
	CategoryTrade     = "trade"
	CategorySystem    = "system"
)

// CategoryOrder is the order categories are listed in help output.
var CategoryOrder = []struct {
	Name  string
	Label string
}{
	{CategoryMovement, "Movement"},
	{CategoryWorld, "World"},
	{CategoryCombat, "Combat"},
	{CategoryCharacter, "Character"},
	{CategoryTrade, "Trade"},
	{CategorySystem, "System"},
}

// Handler identifiers mapping commands to game operations.
const (
	HandlerMove      = "move"
	HandlerLook      = "look"
	HandlerExits     = "exits"
	HandlerTalk      = "talk"
	HandlerChoose    = "choose"
	HandlerAttack    = "attack"
	HandlerUse       = "use"
	HandlerStatus    = "status"
	HandlerInventory = "inventory"
	HandlerQuests    = "quests"
	HandlerRecipes   = "recipes"
	HandlerCraft     = "craft"
	HandlerWield     = "wield"
	HandlerReady     = "ready"
	HandlerWares     = "wares"
	HandlerBuy       = "buy"
	HandlerSell      = "sell"
	HandlerHelp      = "help"
	HandlerSave      = "save"
	HandlerQuit      = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage names the arguments, e.g. "<item>"; empty when none are taken.
	Usage string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command in help output.
	Category string
	// Handler selects the game operation the console runs.
	Handler string
}

// BuiltinCommands returns all built-in console commands.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "north", Aliases: []string{"n"}, Help: "Move north", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "east", Aliases: []string{"e"}, Help: "Move east", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "south", Aliases: []string{"s"}, Help: "Move south", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "west", Aliases: []string{"w"}, Help: "Move west", Category: CategoryMovement, Handler: HandlerMove},

		{Name: "look", Aliases: []string{"l"}, Help: "Describe your surroundings", Category: CategoryWorld, Handler: HandlerLook},
		{Name: "exits", Help: "List the ways out", Category: CategoryWorld, Handler: HandlerExits},
		{Name: "talk", Help: "Show the conversation here", Category: CategoryWorld, Handler: HandlerTalk},
		{Name: "choose", Aliases: []string{"c"}, Usage: "<number>", Help: "Pick a conversation choice", Category: CategoryWorld, Handler: HandlerChoose},

		{Name: "attack", Aliases: []string{"a", "kill"}, Help: "Attack the monster here", Category: CategoryCombat, Handler: HandlerAttack},
		{Name: "use", Aliases: []string{"eat"}, Help: "Use your readied consumable", Category: CategoryCombat, Handler: HandlerUse},

		{Name: "status", Aliases: []string{"st", "score"}, Help: "Show your character", Category: CategoryCharacter, Handler: HandlerStatus},
		{Name: "inventory", Aliases: []string{"i", "inv"}, Help: "List what you carry", Category: CategoryCharacter, Handler: HandlerInventory},
		{Name: "quests", Aliases: []string{"q"}, Help: "List your quests", Category: CategoryCharacter, Handler: HandlerQuests},
		{Name: "recipes", Help: "List the recipes you know", Category: CategoryCharacter, Handler: HandlerRecipes},
		{Name: "craft", Usage: "<recipe>", Help: "Craft a known recipe", Category: CategoryCharacter, Handler: HandlerCraft},
		{Name: "wield", Aliases: []string{"equip"}, Usage: "<item>", Help: "Wield a weapon you carry", Category: CategoryCharacter, Handler: HandlerWield},
		{Name: "ready", Usage: "<item>", Help: "Ready a consumable you carry", Category: CategoryCharacter, Handler: HandlerReady},

		{Name: "wares", Aliases: []string{"list"}, Help: "List what the trader here sells", Category: CategoryTrade, Handler: HandlerWares},
		{Name: "buy", Usage: "<item>", Help: "Buy one item from the trader", Category: CategoryTrade, Handler: HandlerBuy},
		{Name: "sell", Usage: "<item>", Help: "Sell one item to the trader", Category: CategoryTrade, Handler: HandlerSell},

		{Name: "help", Aliases: []string{"?"}, Help: "Show this list", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "save", Help: "Save your game", Category: CategorySystem, Handler: HandlerSave},
		{Name: "quit", Aliases: []string{"exit"}, Help: "Save and leave the game", Category: CategorySystem, Handler: HandlerQuit},
	}
}
