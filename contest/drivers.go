package contest

// cupRoster is the fixed 36-driver Cup Series field users pick from.
var cupRoster = []string{
	"Kyle Larson", "Chase Elliott", "Tyler Reddick", "Christopher Bell",
	"William Byron", "Denny Hamlin", "Kyle Busch", "Martin Truex Jr.",
	"Ross Chastain", "Ryan Blaney", "Joey Logano", "Brad Keselowski",
	"Chris Buescher", "Bubba Wallace", "Alex Bowman", "Daniel Suarez",
	"Austin Cindric", "Chase Briscoe", "AJ Allmendinger", "Michael McDowell",
	"Ricky Stenhouse Jr.", "Ty Gibbs", "Todd Gilliland", "Corey LaJoie",
	"Erik Jones", "Justin Haley", "Noah Gragson", "Zane Smith",
	"Carson Hocevar", "Ryan Preece", "Harrison Burton", "Josh Berry",
	"Kaz Grala", "Ty Dillon", "John Hunter Nemechek", "Austin Dillon",
}

// Roster returns a copy of the full driver field.
func Roster() []string {
	out := make([]string, len(cupRoster))
	copy(out, cupRoster)
	return out
}
