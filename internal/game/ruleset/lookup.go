package ruleset

// FindAttribute looks up an attribute by fuzzy name.
func (d *Dataset) FindAttribute(search string) (Entry[Attribute], error) {
	m := Match(Entries(d.Attributes), search)
	return m.Entry, m.Err()
}

// FindTalent looks up a talent by fuzzy name.
func (d *Dataset) FindTalent(search string) (Entry[Checked], error) {
	m := Match(Entries(d.Talents), search)
	return m.Entry, m.Err()
}

// FindCombatTechnique looks up a combat technique among the dataset and the
// given custom entries.
func (d *Dataset) FindCombatTechnique(search string, custom ...Entry[CombatTechnique]) (Entry[CombatTechnique], error) {
	m := Match(append(Entries(d.CombatTechniques), custom...), search)
	return m.Entry, m.Err()
}

// FindSpell looks up a spell among the dataset and the given custom entries.
func (d *Dataset) FindSpell(search string, custom ...Entry[Checked]) (Entry[Checked], error) {
	m := Match(append(Entries(d.Spells), custom...), search)
	return m.Entry, m.Err()
}

// FindChant looks up a chant among the dataset and the given custom entries.
func (d *Dataset) FindChant(search string, custom ...Entry[Checked]) (Entry[Checked], error) {
	m := Match(append(Entries(d.Chants), custom...), search)
	return m.Entry, m.Err()
}
