package archetype

// DefaultEdition is the built-in apocalypse-readiness catalogue.
const DefaultEdition = "apocalypse.v1"

// builtin holds the nineteen archetypes of the apocalypse.v1 edition.
// Profiles are hand-tuned; order here is cosmetic (catalogues sort by id).
var builtin = []Archetype{
	{
		ID: "ostrich", Name: "The Ostrich",
		Summary: "Keeps the head down and the news off; the world can end without them.",
		Traits:  TraitProfile{Awareness: 0.10, Affect: 0.30, Agency: 0.20, Time: -0.20, Relationality: 0.40, Posture: 0.10},
	},
	{
		ID: "prepper", Name: "The Prepper",
		Summary: "Stockpiles, drills and contingency plans for every plausible collapse.",
		Traits:  TraitProfile{Awareness: 0.90, Affect: -0.40, Agency: 0.85, Time: 0.80, Relationality: 0.25, Posture: 0.90},
	},
	{
		ID: "apocaloptimist", Name: "The Apocaloptimist",
		Summary: "Sees the end of this world as the start of a better one.",
		Traits:  TraitProfile{Awareness: 0.80, Affect: 0.85, Agency: 0.75, Time: 0.85, Relationality: 0.75, Posture: 0.80},
	},
	{
		ID: "doomer", Name: "The Doomer",
		Summary: "Convinced it is over, and that nothing anyone does will matter.",
		Traits:  TraitProfile{Awareness: 0.85, Affect: -0.90, Agency: 0.15, Time: 0.60, Relationality: 0.30, Posture: 0.20},
	},
	{
		ID: "survivalist", Name: "The Survivalist",
		Summary: "Trains to outlast everyone, preferably alone and far from town.",
		Traits:  TraitProfile{Awareness: 0.85, Affect: -0.30, Agency: 0.90, Time: 0.50, Relationality: 0.10, Posture: 0.95},
	},
	{
		ID: "scavenger", Name: "The Scavenger",
		Summary: "Travels light and turns whatever the day leaves behind into an advantage.",
		Traits:  TraitProfile{Awareness: 0.60, Affect: 0.10, Agency: 0.70, Time: -0.10, Relationality: 0.30, Posture: 0.75},
	},
	{
		ID: "warlord", Name: "The Warlord",
		Summary: "Reads collapse as a power vacuum and intends to fill it.",
		Traits:  TraitProfile{Awareness: 0.70, Affect: -0.20, Agency: 0.95, Time: 0.30, Relationality: 0.55, Posture: 1.00},
	},
	{
		ID: "hedonist", Name: "The Hedonist",
		Summary: "If the clock is running out, every remaining hour should be a good one.",
		Traits:  TraitProfile{Awareness: 0.50, Affect: 0.70, Agency: 0.40, Time: -0.70, Relationality: 0.65, Posture: 0.45},
	},
	{
		ID: "mystic", Name: "The Mystic",
		Summary: "Looks for the meaning of the ending rather than a way around it.",
		Traits:  TraitProfile{Awareness: 0.65, Affect: 0.40, Agency: 0.35, Time: -0.40, Relationality: 0.50, Posture: 0.25},
	},
	{
		ID: "builder", Name: "The Builder",
		Summary: "Already sketching the institutions the next world will need.",
		Traits:  TraitProfile{Awareness: 0.75, Affect: 0.50, Agency: 0.85, Time: 0.90, Relationality: 0.80, Posture: 0.85},
	},
	{
		ID: "healer", Name: "The Healer",
		Summary: "Plans to be wherever the wounded are, supplies or no supplies.",
		Traits:  TraitProfile{Awareness: 0.70, Affect: 0.45, Agency: 0.60, Time: 0.20, Relationality: 0.95, Posture: 0.65},
	},
	{
		ID: "nomad", Name: "The Nomad",
		Summary: "Stays mobile and unattached; safety is a direction, not a place.",
		Traits:  TraitProfile{Awareness: 0.60, Affect: 0.15, Agency: 0.65, Time: 0.10, Relationality: 0.20, Posture: 0.70},
	},
	{
		ID: "guardian", Name: "The Guardian",
		Summary: "Measures every plan by whether the people inside the fence stay safe.",
		Traits:  TraitProfile{Awareness: 0.75, Affect: 0.05, Agency: 0.70, Time: 0.15, Relationality: 0.90, Posture: 0.80},
	},
	{
		ID: "trickster", Name: "The Trickster",
		Summary: "Treats disorder as a playground and rules as raw material.",
		Traits:  TraitProfile{Awareness: 0.55, Affect: 0.60, Agency: 0.65, Time: -0.15, Relationality: 0.45, Posture: 0.60},
	},
	{
		ID: "archivist", Name: "The Archivist",
		Summary: "Saves the books, the seeds and the source code for whoever comes after.",
		Traits:  TraitProfile{Awareness: 0.80, Affect: 0.00, Agency: 0.55, Time: -0.85, Relationality: 0.60, Posture: 0.50},
	},
	{
		ID: "prophet", Name: "The Prophet",
		Summary: "Saw it coming, said so loudly, and is still recruiting believers.",
		Traits:  TraitProfile{Awareness: 0.90, Affect: -0.60, Agency: 0.60, Time: 0.95, Relationality: 0.85, Posture: 0.75},
	},
	{
		ID: "tinkerer", Name: "The Tinkerer",
		Summary: "Believes there is no broken system a workbench cannot answer.",
		Traits:  TraitProfile{Awareness: 0.65, Affect: 0.35, Agency: 0.80, Time: 0.40, Relationality: 0.35, Posture: 0.85},
	},
	{
		ID: "homesteader", Name: "The Homesteader",
		Summary: "Digs in, plants deep, and plans to feed the neighbours too.",
		Traits:  TraitProfile{Awareness: 0.70, Affect: 0.25, Agency: 0.75, Time: 0.55, Relationality: 0.60, Posture: 0.70},
	},
	{
		ID: "diplomat", Name: "The Diplomat",
		Summary: "Bets that the group that keeps talking is the group that survives.",
		Traits:  TraitProfile{Awareness: 0.75, Affect: 0.30, Agency: 0.65, Time: 0.45, Relationality: 1.00, Posture: 0.60},
	},
}

func init() {
	c, err := New(DefaultEdition, builtin)
	if err != nil {
		panic(err) // built-in table must validate
	}
	Register(c)
}
