package controller

import (
	"school_survey_backend/internal/model"
	"school_survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// RegionController 级联地区数据，只读
type RegionController struct{}

func NewRegionController() *RegionController {
	return &RegionController{}
}

// GetRegions godoc
// @Summary 省市区级联数据
// @Description 用于表单级联选择；服务端不据此校验提交内容
// @Tags 问卷
// @Produce json
// @Success 200 {object} util.Response{data=map[string]map[string][]string}
// @Router /api/regions [get]
func (c *RegionController) GetRegions(ctx *gin.Context) {
	util.Success(ctx, model.Regions())
}
