package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}

func sizeProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"width":  map[string]interface{}{"type": "number"},
			"height": map[string]interface{}{"type": "number"},
		},
		"required": []string{"width", "height"},
	}
}

func pathsProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": "Image file paths in page order",
		"items":       map[string]interface{}{"type": "string"},
	}
}

// documentOptionsProp describes the options object shared by the document
// tools. Omitted fields take the server's configured defaults.
func documentOptionsProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Document options; omitted fields use the configured defaults",
		"properties": map[string]interface{}{
			"page_size": map[string]interface{}{
				"type":        "object",
				"description": "Page size: name a4, letter or custom; width/height in mm for custom",
				"properties": map[string]interface{}{
					"name":   map[string]interface{}{"type": "string", "enum": []string{"a4", "letter", "custom"}},
					"width":  map[string]interface{}{"type": "number"},
					"height": map[string]interface{}{"type": "number"},
				},
			},
			"orientation": map[string]interface{}{
				"type": "string",
				"enum": []string{"portrait", "landscape"},
			},
			"margins": map[string]interface{}{
				"type":        "object",
				"description": "Margins in mm",
				"properties": map[string]interface{}{
					"top":    map[string]interface{}{"type": "number"},
					"right":  map[string]interface{}{"type": "number"},
					"bottom": map[string]interface{}{"type": "number"},
					"left":   map[string]interface{}{"type": "number"},
				},
			},
			"fit_mode": map[string]interface{}{
				"type": "string",
				"enum": []string{"contain", "cover", "stretch"},
			},
			"rotation_degrees": prop("number", "Clockwise rotation applied to every image"),
			"decorations": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"header":       map[string]interface{}{"type": "string"},
					"footer":       map[string]interface{}{"type": "string"},
					"caption":      map[string]interface{}{"type": "string"},
					"page_numbers": map[string]interface{}{"type": "boolean"},
				},
			},
			"metadata": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"title":  map[string]interface{}{"type": "string"},
					"author": map[string]interface{}{"type": "string"},
				},
			},
			"output_file_name": prop("string", "Document file name, default combined.pdf"),
			"image_format":     prop("string", "Embedded image encoding: jpeg (used when image_quality < 1) or png"),
			"image_quality":    prop("number", "Embedded JPEG quality between 0 and 1"),
			"clip_overflow":    prop("boolean", "Clip cover-fitted images to the margins"),
			"background":       prop("string", "Hex color for corners exposed by rotation"),
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its pixel dimensions, detected format and physical size at 96 DPI.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": prop("string", "Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": prop("string", "Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},

		// Planning
		{
			Name:        "image_plan_crop",
			Description: "Compute the source rectangle and output size for a crop & resize without touching pixels. With lock_aspect_ratio the source is center-cropped to the target ratio.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":              prop("string", "Image file to read the source size from; alternative to width/height"),
					"width":             prop("number", "Source width in pixels"),
					"height":            prop("number", "Source height in pixels"),
					"target_width":      prop("number", "Output width in pixels"),
					"target_height":     prop("number", "Output height in pixels"),
					"lock_aspect_ratio": prop("boolean", "Center-crop to the target aspect ratio"),
					"allow_upscale":     prop("boolean", "Allow output larger than the cropped source"),
				},
				"required": []string{"target_width", "target_height"},
			},
		},
		{
			Name:        "image_plan_rotation",
			Description: "Compute the bounding box and center-pivot transform for rotating an image clockwise by an arbitrary angle.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   prop("string", "Image file to read the source size from; alternative to width/height"),
					"width":  prop("number", "Source width"),
					"height": prop("number", "Source height"),
					"angle":  prop("number", "Rotation in degrees; any value, normalized to [0,360)"),
				},
				"required": []string{"angle"},
			},
		},
		{
			Name:        "image_plan_fit",
			Description: "Compute the drawn size and centering offset of content placed in a drawable area using contain, cover or stretch.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"drawable_width":  prop("number", "Drawable area width in mm"),
					"drawable_height": prop("number", "Drawable area height in mm"),
					"content_width":   prop("number", "Content width in mm"),
					"content_height":  prop("number", "Content height in mm"),
					"strategy": map[string]interface{}{
						"type":        "string",
						"description": "Fit strategy. Default contain",
						"enum":        []string{"contain", "cover", "stretch"},
					},
				},
				"required": []string{"drawable_width", "drawable_height", "content_width", "content_height"},
			},
		},

		// Rendering
		{
			Name:        "image_crop_resize",
			Description: "Crop and resize an image to a target size and return it as base64 (or save it to output_path). The suggested file name is crop-WxH.png or .jpg.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":              prop("string", "Absolute path to the image file"),
					"target_width":      prop("number", "Output width in pixels"),
					"target_height":     prop("number", "Output height in pixels"),
					"min_size":          sizeProp("Smallest allowed target size"),
					"max_size":          sizeProp("Largest allowed target size"),
					"lock_aspect_ratio": prop("boolean", "Center-crop to the target aspect ratio"),
					"allow_upscale":     prop("boolean", "Allow output larger than the cropped source"),
					"background_color":  prop("string", "Hex fill color, default white"),
					"output_format": map[string]interface{}{
						"type": "string",
						"enum": []string{"png", "jpeg"},
					},
					"jpeg_quality": prop("number", "JPEG quality between 0 and 1"),
					"output_path":  prop("string", "Optional file or directory to save the result to"),
				},
				"required": []string{"path", "target_width", "target_height"},
			},
		},

		// Documents
		{
			Name:        "document_plan",
			Description: "Lay out images as PDF pages (one image per page, in order) and return every page's placement and decorations without rendering.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths":   pathsProp(),
					"options": documentOptionsProp(),
				},
				"required": []string{"paths"},
			},
		},
		{
			Name:        "document_combine",
			Description: "Combine images into a single PDF, one image per page in the given order, with optional header, footer, caption and \"Page N of M\" numbering.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths":       pathsProp(),
					"options":     documentOptionsProp(),
					"output_path": prop("string", "File or directory to write the PDF to"),
				},
				"required": []string{"paths", "output_path"},
			},
		},

		// Sequence Editing
		{
			Name:        "sequence_move",
			Description: "Move the image at index from to index to and return the new order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": pathsProp(),
					"from":  prop("integer", "0-based index of the image to move"),
					"to":    prop("integer", "0-based destination index"),
				},
				"required": []string{"paths", "from", "to"},
			},
		},
		{
			Name:        "sequence_remove",
			Description: "Remove the image at index and return the new order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": pathsProp(),
					"index": prop("integer", "0-based index of the image to remove"),
				},
				"required": []string{"paths", "index"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
