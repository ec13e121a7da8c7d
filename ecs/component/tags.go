package component

type NPCTag struct{}

var NPCTagComponent = NewComponent[NPCTag]()
