package model

// 省→市→区县级联数据，进程内只读，仅用于表单级联选择。
// 服务端不据此校验提交内容。
var regionData = map[string]map[string][]string{
	"北京市": {
		"北京市": {"东城区", "西城区", "朝阳区", "丰台区", "石景山区", "海淀区", "门头沟区", "房山区", "通州区", "顺义区", "昌平区", "大兴区", "怀柔区", "平谷区", "密云区", "延庆区"},
	},
	"上海市": {
		"上海市": {"黄浦区", "徐汇区", "长宁区", "静安区", "普陀区", "虹口区", "杨浦区", "闵行区", "宝山区", "嘉定区", "浦东新区", "金山区", "松江区", "青浦区", "奉贤区", "崇明区"},
	},
	"天津市": {
		"天津市": {"和平区", "河东区", "河西区", "南开区", "河北区", "红桥区", "东丽区", "西青区", "津南区", "北辰区", "武清区", "宝坻区", "滨海新区", "宁河区", "静海区", "蓟州区"},
	},
	"重庆市": {
		"重庆市": {"万州区", "涪陵区", "渝中区", "大渡口区", "江北区", "沙坪坝区", "九龙坡区", "南岸区", "北碚区", "渝北区", "巴南区", "黔江区", "长寿区", "江津区", "合川区", "永川区"},
	},
	"河北省": {
		"石家庄市": {"长安区", "桥西区", "新华区", "井陉矿区", "裕华区", "藁城区", "鹿泉区", "栾城区"},
		"唐山市":  {"路南区", "路北区", "古冶区", "开平区", "丰南区", "丰润区", "曹妃甸区"},
		"保定市":  {"竞秀区", "莲池区", "满城区", "清苑区", "徐水区"},
		"衡水市":  {"桃城区", "冀州区", "深州市", "武强县", "饶阳县"},
	},
	"河南省": {
		"郑州市": {"中原区", "二七区", "管城回族区", "金水区", "上街区", "惠济区"},
		"洛阳市": {"老城区", "西工区", "瀍河回族区", "涧西区", "偃师区", "孟津区"},
		"开封市": {"龙亭区", "顺河回族区", "鼓楼区", "禹王台区", "祥符区"},
		"南阳市": {"宛城区", "卧龙区", "邓州市", "南召县", "方城县"},
	},
	"山东省": {
		"济南市": {"历下区", "市中区", "槐荫区", "天桥区", "历城区", "长清区", "章丘区", "济阳区", "莱芜区", "钢城区"},
		"青岛市": {"市南区", "市北区", "黄岛区", "崂山区", "李沧区", "城阳区", "即墨区"},
		"烟台市": {"芝罘区", "福山区", "牟平区", "莱山区", "蓬莱区"},
		"潍坊市": {"潍城区", "寒亭区", "坊子区", "奎文区"},
	},
	"江苏省": {
		"南京市": {"玄武区", "秦淮区", "建邺区", "鼓楼区", "浦口区", "栖霞区", "雨花台区", "江宁区", "六合区", "溧水区", "高淳区"},
		"苏州市": {"虎丘区", "吴中区", "相城区", "姑苏区", "吴江区"},
		"无锡市": {"锡山区", "惠山区", "滨湖区", "梁溪区", "新吴区"},
		"徐州市": {"鼓楼区", "云龙区", "贾汪区", "泉山区", "铜山区"},
	},
	"浙江省": {
		"杭州市": {"上城区", "拱墅区", "西湖区", "滨江区", "萧山区", "余杭区", "临平区", "钱塘区", "富阳区", "临安区"},
		"宁波市": {"海曙区", "江北区", "北仑区", "镇海区", "鄞州区", "奉化区"},
		"温州市": {"鹿城区", "龙湾区", "瓯海区", "洞头区"},
	},
	"广东省": {
		"广州市": {"荔湾区", "越秀区", "海珠区", "天河区", "白云区", "黄埔区", "番禺区", "花都区", "南沙区", "从化区", "增城区"},
		"深圳市": {"罗湖区", "福田区", "南山区", "宝安区", "龙岗区", "盐田区", "龙华区", "坪山区", "光明区"},
		"东莞市": {"东莞市"},
		"佛山市": {"禅城区", "南海区", "顺德区", "三水区", "高明区"},
	},
	"四川省": {
		"成都市": {"锦江区", "青羊区", "金牛区", "武侯区", "成华区", "龙泉驿区", "青白江区", "新都区", "温江区", "双流区", "郫都区", "新津区"},
		"绵阳市": {"涪城区", "游仙区", "安州区"},
		"南充市": {"顺庆区", "高坪区", "嘉陵区"},
	},
	"湖南省": {
		"长沙市": {"芙蓉区", "天心区", "岳麓区", "开福区", "雨花区", "望城区", "长沙县", "浏阳市", "宁乡市"},
		"株洲市": {"荷塘区", "芦淞区", "石峰区", "天元区", "渌口区"},
		"衡阳市": {"珠晖区", "雁峰区", "石鼓区", "蒸湘区", "南岳区"},
	},
	"湖北省": {
		"武汉市": {"江岸区", "江汉区", "硚口区", "汉阳区", "武昌区", "青山区", "洪山区", "东西湖区", "汉南区", "蔡甸区", "江夏区", "黄陂区", "新洲区"},
		"宜昌市": {"西陵区", "伍家岗区", "点军区", "猇亭区", "夷陵区"},
		"襄阳市": {"襄城区", "樊城区", "襄州区"},
	},
	"安徽省": {
		"合肥市": {"瑶海区", "庐阳区", "蜀山区", "包河区", "长丰县", "肥东县", "肥西县"},
		"芜湖市": {"镜湖区", "鸠江区", "弋江区", "湾沚区", "繁昌区"},
		"阜阳市": {"颍州区", "颍东区", "颍泉区", "界首市", "临泉县"},
	},
	"江西省": {
		"南昌市": {"东湖区", "西湖区", "青云谱区", "青山湖区", "新建区", "红谷滩区"},
		"赣州市": {"章贡区", "南康区", "赣县区"},
		"九江市": {"濂溪区", "浔阳区", "柴桑区"},
	},
	"陕西省": {
		"西安市": {"新城区", "碑林区", "莲湖区", "灞桥区", "未央区", "雁塔区", "阎良区", "临潼区", "长安区", "高陵区", "鄠邑区"},
		"宝鸡市": {"渭滨区", "金台区", "陈仓区"},
		"咸阳市": {"秦都区", "渭城区", "杨陵区"},
	},
	"福建省": {
		"福州市": {"鼓楼区", "台江区", "仓山区", "马尾区", "晋安区", "长乐区"},
		"厦门市": {"思明区", "海沧区", "湖里区", "集美区", "同安区", "翔安区"},
		"泉州市": {"鲤城区", "丰泽区", "洛江区", "泉港区"},
	},
	"辽宁省": {
		"沈阳市": {"和平区", "沈河区", "大东区", "皇姑区", "铁西区", "苏家屯区", "浑南区", "沈北新区", "于洪区"},
		"大连市": {"中山区", "西岗区", "沙河口区", "甘井子区", "旅顺口区", "金州区", "普兰店区"},
	},
	"黑龙江省": {
		"哈尔滨市":  {"道里区", "南岗区", "道外区", "平房区", "松北区", "香坊区", "呼兰区", "阿城区", "双城区"},
		"齐齐哈尔市": {"龙沙区", "建华区", "铁锋区", "昂昂溪区"},
	},
	"贵州省": {
		"贵阳市": {"南明区", "云岩区", "花溪区", "乌当区", "白云区", "观山湖区"},
		"遵义市": {"红花岗区", "汇川区", "播州区"},
	},
	"云南省": {
		"昆明市": {"五华区", "盘龙区", "官渡区", "西山区", "东川区", "呈贡区", "晋宁区"},
		"曲靖市": {"麒麟区", "沾益区", "马龙区"},
	},
	"广西壮族自治区": {
		"南宁市": {"兴宁区", "青秀区", "江南区", "西乡塘区", "良庆区", "邕宁区", "武鸣区"},
		"柳州市": {"城中区", "鱼峰区", "柳南区", "柳北区", "柳江区"},
	},
}

// Regions 返回完整级联数据。调用方不得修改。
func Regions() map[string]map[string][]string {
	return regionData
}

func Provinces() []string {
	out := make([]string, 0, len(regionData))
	for p := range regionData {
		out = append(out, p)
	}
	return out
}

func Cities(province string) []string {
	cities, ok := regionData[province]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(cities))
	for c := range cities {
		out = append(out, c)
	}
	return out
}

func Districts(province, city string) []string {
	if cities, ok := regionData[province]; ok {
		return cities[city]
	}
	return nil
}
