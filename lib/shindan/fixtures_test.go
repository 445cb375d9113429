package shindan

import _ "embed"

//go:embed testdata/shindan_page.html
var shindanPageFixture string

//go:embed testdata/shindan_page_parts.html
var shindanPagePartsFixture string

//go:embed testdata/shindan_page_no_token.html
var shindanPageNoTokenFixture string

//go:embed testdata/result_page.html
var resultPageFixture string

//go:embed testdata/result_page_blocks.html
var resultPageBlocksFixture string

//go:embed testdata/result_page_empty.html
var resultPageEmptyFixture string
