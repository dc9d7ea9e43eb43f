package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve mapping for fragrance documents.
//
// Names get English stemming and term vectors for highlighting. Brands,
// accords and notes use the simple analyzer so "Rose" and "rose" match but
// ingredient names are not stemmed. Gender is an exact keyword, and position
// is the zero-padded catalog position used to break score ties.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = en.AnalyzerName
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	brandFieldMapping := bleve.NewTextFieldMapping()
	brandFieldMapping.Analyzer = simple.Name
	brandFieldMapping.Store = true
	brandFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("brand", brandFieldMapping)

	accordsFieldMapping := bleve.NewTextFieldMapping()
	accordsFieldMapping.Analyzer = simple.Name
	docMapping.AddFieldMappingsAt("accords", accordsFieldMapping)

	notesFieldMapping := bleve.NewTextFieldMapping()
	notesFieldMapping.Analyzer = simple.Name
	docMapping.AddFieldMappingsAt("notes", notesFieldMapping)

	genderFieldMapping := bleve.NewTextFieldMapping()
	genderFieldMapping.Analyzer = keyword.Name
	genderFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("gender", genderFieldMapping)

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	idFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	positionFieldMapping := bleve.NewTextFieldMapping()
	positionFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("position", positionFieldMapping)

	yearFieldMapping := bleve.NewNumericFieldMapping()
	yearFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("year", yearFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
